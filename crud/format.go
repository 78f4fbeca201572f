package crud

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCharLength is the bound given to character types declared without one.
const DefaultCharLength = 100

var charBound = "(" + strconv.Itoa(DefaultCharLength) + ")"

// ToCamelCase converts a snake_case identifier to camelCase.
// "user_account_id" becomes "userAccountId". The input is not validated.
func ToCamelCase(name string) string {
	// Casers keep state between calls, so each conversion gets its own.
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	parts := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(lower.String(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(title.String(p))
	}
	return b.String()
}

// NormalizeType gives unbounded character types the default bound SQL Server
// requires. Any declared type that contains "varchar" or "char" without a
// parenthesized bound collapses to the bare bounded form, so "nvarchar"
// becomes "VARCHAR(100)" and "character varying" becomes "CHAR(100)".
func NormalizeType(declared string) string {
	lower := strings.ToLower(strings.TrimSpace(declared))
	switch {
	case lower == "varchar" || lower == "char":
		return strings.ToUpper(strings.TrimSpace(declared)) + charBound
	case strings.Contains(lower, "varchar") && !strings.Contains(lower, "("):
		return "VARCHAR" + charBound
	case strings.Contains(lower, "char") && !strings.Contains(lower, "("):
		return "CHAR" + charBound
	}
	return declared
}

// ProcedureName returns the schema-qualified routine name for a table,
// e.g. "public.api_SelectUsers".
func ProcedureName(schema, prefix string, kind Kind, table string) string {
	return schema + "." + prefix + kind.String() + upperFirst(table)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
