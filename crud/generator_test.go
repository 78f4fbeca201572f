package crud

import (
	"fmt"
	"strings"
	"testing"

	"github.com/crudgen/crudgen/ir"
	"github.com/google/go-cmp/cmp"
)

var usersColumns = []ir.Column{
	{Name: "id", DataType: "integer"},
	{Name: "email", DataType: "varchar"},
	{Name: "age", DataType: "int"},
}

func usersRequest(kind Kind, dialect Dialect) Request {
	return Request{Kind: kind, Dialect: dialect, Schema: "public", Table: "users", Columns: usersColumns}
}

var dialects = []Dialect{PostgresStyle, TSqlStyle}

func TestGenerate_InsertWritableColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []ir.Column
		want    []string
	}{
		{
			name:    "id removed from the middle",
			columns: []ir.Column{{Name: "b", DataType: "int"}, {Name: "id", DataType: "int"}, {Name: "a", DataType: "text"}},
			want:    []string{"b", "a"},
		},
		{
			name:    "no id column",
			columns: []ir.Column{{Name: "z", DataType: "int"}, {Name: "y", DataType: "int"}},
			want:    []string{"z", "y"},
		},
		{
			name:    "only the literal name id is dropped",
			columns: []ir.Column{{Name: "ID", DataType: "int"}, {Name: "user_id", DataType: "int"}},
			want:    []string{"ID", "user_id"},
		},
	}

	for _, tt := range tests {
		for _, d := range dialects {
			t.Run(tt.name+"/"+d.String(), func(t *testing.T) {
				res := Generate(Request{Kind: Insert, Dialect: d, Schema: "s", Table: "t", Columns: tt.columns})
				if diff := cmp.Diff(tt.want, res.Columns()); diff != "" {
					t.Errorf("writable columns mismatch (-want +got):\n%s", diff)
				}
				insertList := "INSERT INTO s.t (" + strings.Join(tt.want, ", ") + ")"
				if !strings.Contains(res.SQL, insertList) {
					t.Errorf("expected %q in:\n%s", insertList, res.SQL)
				}
			})
		}
	}
}

func TestGenerate_InsertWithoutWritableColumns(t *testing.T) {
	for _, d := range dialects {
		t.Run(d.String(), func(t *testing.T) {
			res := Generate(Request{Kind: Insert, Dialect: d, Schema: "s", Table: "t", Columns: []ir.Column{{Name: "id", DataType: "int"}}})
			if !res.OK() {
				t.Fatalf("unexpected diagnostic: %s", res.Text())
			}
			if !strings.Contains(res.SQL, "INSERT INTO s.t DEFAULT VALUES") {
				t.Errorf("expected DEFAULT VALUES insert:\n%s", res.SQL)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, kind := range AllKinds {
		for _, d := range dialects {
			t.Run(kind.String()+"/"+d.String(), func(t *testing.T) {
				req := usersRequest(kind, d)
				req.Prefix = "api_"
				first := GenerateSQL(req)
				for i := 0; i < 5; i++ {
					if got := GenerateSQL(req); got != first {
						t.Fatalf("output changed between calls:\n%s\n---\n%s", first, got)
					}
				}
			})
		}
	}
}

func TestGenerate_SelectWithFilter(t *testing.T) {
	columns := []ir.Column{{Name: "id", DataType: "int"}, {Name: "email", DataType: "varchar"}}

	tests := []struct {
		dialect   Dialect
		param     Parameter
		predicate string
	}{
		{PostgresStyle, Parameter{Name: "p_email", Column: "email", Type: "varchar"}, "WHERE t.email = p_email;"},
		{TSqlStyle, Parameter{Name: "p_email", Column: "email", Type: "VARCHAR(100)"}, "WHERE email = @p_email;"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			res := Generate(Request{
				Kind: Select, Dialect: tt.dialect, Schema: "public", Table: "users",
				Columns: columns, FilterFields: []string{"email"},
			})
			if !res.OK() {
				t.Fatalf("unexpected diagnostic: %s", res.Text())
			}
			if diff := cmp.Diff([]Parameter{tt.param}, res.Parameters); diff != "" {
				t.Errorf("parameters mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(res.SQL, tt.predicate) {
				t.Errorf("expected predicate %q in:\n%s", tt.predicate, res.SQL)
			}
			if strings.Contains(res.SQL, "p_id") {
				t.Errorf("predicate must reference only email:\n%s", res.SQL)
			}
		})
	}
}

func TestGenerate_SelectMultipleFilters(t *testing.T) {
	res := Generate(Request{
		Kind: Select, Dialect: TSqlStyle, Schema: "dbo", Table: "users",
		Columns: usersColumns, FilterFields: []string{"age", "email"},
	})
	if !strings.Contains(res.SQL, "    @p_age int, @p_email VARCHAR(100)\n") {
		t.Errorf("expected both filter parameters in order:\n%s", res.SQL)
	}
	if !strings.Contains(res.SQL, "WHERE age = @p_age AND email = @p_email;") {
		t.Errorf("expected ANDed predicates:\n%s", res.SQL)
	}
}

func TestGenerate_SelectDefaultFilterIsFirstValidColumn(t *testing.T) {
	columns := []ir.Column{{Name: "", DataType: "int"}, {Name: "code", DataType: "char(3)"}, {Name: "label", DataType: "text"}}
	res := Generate(Request{Kind: Select, Dialect: PostgresStyle, Schema: "ref", Table: "countries", Columns: columns})
	if !res.OK() {
		t.Fatalf("unexpected diagnostic: %s", res.Text())
	}
	if diff := cmp.Diff([]string{"code"}, res.Columns()); diff != "" {
		t.Errorf("filter columns mismatch (-want +got):\n%s", diff)
	}
	if res.Returns != "TABLE(code char(3), label text)" {
		t.Errorf("unexpected returns clause %q", res.Returns)
	}
}

func TestGenerate_SelectDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		columns []ir.Column
		filter  []string
		reason  DiagnosticReason
		want    string
	}{
		{
			name:   "no columns",
			reason: NoValidColumns,
			want:   "-- No valid columns found for table users",
		},
		{
			name:    "all columns invalid",
			columns: []ir.Column{{Name: "id"}, {DataType: "int"}},
			reason:  NoValidColumns,
			want:    "-- No valid columns found for table users",
		},
		{
			name:    "missing filter field",
			columns: []ir.Column{{Name: "id", DataType: "int"}, {Name: "email", DataType: "varchar"}},
			filter:  []string{"phone"},
			reason:  FilterFieldNotFound,
			want:    "-- Filter field 'phone' not found in table users",
		},
		{
			name:    "first missing field is reported",
			columns: []ir.Column{{Name: "id", DataType: "int"}},
			filter:  []string{"id", "phone", "fax"},
			reason:  FilterFieldNotFound,
			want:    "-- Filter field 'phone' not found in table users",
		},
		{
			name:    "filter on an invalid column",
			columns: []ir.Column{{Name: "id", DataType: "int"}, {Name: "phone"}},
			filter:  []string{"phone"},
			reason:  FilterFieldNotFound,
			want:    "-- Filter field 'phone' not found in table users",
		},
	}

	for _, tt := range tests {
		for _, d := range dialects {
			t.Run(tt.name+"/"+d.String(), func(t *testing.T) {
				req := Request{Kind: Select, Dialect: d, Schema: "public", Table: "users", Columns: tt.columns, FilterFields: tt.filter}
				res := Generate(req)
				if res.OK() {
					t.Fatalf("expected diagnostic, got:\n%s", res.SQL)
				}
				if res.Diagnostic.Reason != tt.reason {
					t.Errorf("reason = %s, want %s", res.Diagnostic.Reason, tt.reason)
				}
				if res.SQL != "" {
					t.Errorf("expected no SQL with a diagnostic, got:\n%s", res.SQL)
				}
				if got := GenerateSQL(req); got != tt.want {
					t.Errorf("GenerateSQL() = %q, want %q", got, tt.want)
				}
			})
		}
	}
}

func TestGenerate_DeleteIgnoresColumns(t *testing.T) {
	for _, d := range dialects {
		for _, filter := range [][]string{nil, {"email"}} {
			t.Run(fmt.Sprintf("%s/%v", d, filter), func(t *testing.T) {
				withColumns := usersRequest(Delete, d)
				withColumns.FilterFields = filter
				withoutColumns := withColumns
				withoutColumns.Columns = nil

				if diff := cmp.Diff(Generate(withColumns), Generate(withoutColumns)); diff != "" {
					t.Errorf("delete output depends on columns (-with +without):\n%s", diff)
				}
			})
		}
	}
}

func TestGenerate_DeleteParameterIsInt(t *testing.T) {
	req := usersRequest(Delete, TSqlStyle)
	req.FilterFields = []string{"email"}
	res := Generate(req)
	want := []Parameter{{Name: "p_email", Column: "email", Type: "INT"}}
	if diff := cmp.Diff(want, res.Parameters); diff != "" {
		t.Errorf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_UpdateKeyField(t *testing.T) {
	tests := []struct {
		name   string
		filter []string
		set    string
		where  string
	}{
		{"default id", nil, "SET email = p_email, age = p_age", "WHERE id = p_id;"},
		{"empty first field", []string{""}, "SET email = p_email, age = p_age", "WHERE id = p_id;"},
		{"first field only", []string{"email", "age"}, "SET id = p_id, age = p_age", "WHERE email = p_email;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := usersRequest(Update, PostgresStyle)
			req.FilterFields = tt.filter
			res := Generate(req)
			if diff := cmp.Diff([]string{"id", "email", "age"}, res.Columns()); diff != "" {
				t.Errorf("update must bind every column (-want +got):\n%s", diff)
			}
			if !strings.Contains(res.SQL, tt.set) || !strings.Contains(res.SQL, tt.where) {
				t.Errorf("expected %q and %q in:\n%s", tt.set, tt.where, res.SQL)
			}
		})
	}
}

func TestGenerate_Naming(t *testing.T) {
	for _, kind := range AllKinds {
		for _, d := range dialects {
			for _, prefix := range []string{"", "sp_", "Api"} {
				t.Run(fmt.Sprintf("%s/%s/%q", kind, d, prefix), func(t *testing.T) {
					req := usersRequest(kind, d)
					req.Schema = "sales"
					req.Prefix = prefix
					res := Generate(req)

					want := "sales." + prefix + kind.String() + "Users"
					if res.Name != want {
						t.Errorf("Name = %q, want %q", res.Name, want)
					}
					if !strings.Contains(res.SQL, " "+want) {
						t.Errorf("definition does not declare %q:\n%s", want, res.SQL)
					}
				})
			}
		}
	}
}

func TestGenerate_Returns(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Insert, "INT"},
		{Update, "VOID"},
		{Delete, "VOID"},
		{Select, "TABLE(id integer, email varchar, age int)"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := Generate(usersRequest(tt.kind, PostgresStyle)).Returns; got != tt.want {
				t.Errorf("PostgresStyle Returns = %q, want %q", got, tt.want)
			}
			if got := Generate(usersRequest(tt.kind, TSqlStyle)).Returns; got != "" {
				t.Errorf("TSqlStyle Returns = %q, want empty", got)
			}
		})
	}
}

func TestResult_RoutineType(t *testing.T) {
	if got := Generate(usersRequest(Insert, PostgresStyle)).RoutineType(); got != "FUNCTION" {
		t.Errorf("PostgresStyle RoutineType = %q", got)
	}
	if got := Generate(usersRequest(Insert, TSqlStyle)).RoutineType(); got != "PROCEDURE" {
		t.Errorf("TSqlStyle RoutineType = %q", got)
	}
}
