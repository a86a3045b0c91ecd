package model

import (
	"encoding/json"
	"testing"

	"github.com/harrisonrobin/tasktrack/pkg/sheet"
)

func TestColumnsKeepOrder(t *testing.T) {
	var cols Columns
	cols.Set("Zeta", sheet.TextCell("z"))
	cols.Set("Alpha", sheet.NumberCell(1))
	cols.Set("Zeta", sheet.TextCell("z2"))

	labels := cols.Labels()
	if len(labels) != 2 || labels[0] != "Zeta" || labels[1] != "Alpha" {
		t.Fatalf("Expected [Zeta Alpha], got %v", labels)
	}
	v, ok := cols.Get("Zeta")
	if !ok || v.String() != "z2" {
		t.Errorf("Expected replaced value 'z2', got %q", v.String())
	}

	b, err := json.Marshal(cols)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"Zeta":"z2","Alpha":1}` {
		t.Errorf("Unexpected JSON: %s", b)
	}
}

func TestTaskJSONKeepsColumnsSeparate(t *testing.T) {
	task := Task{ID: "1", Name: "Internal"}
	task.Columns.Set("name", sheet.TextCell("From column"))

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["name"] != "Internal" {
		t.Errorf("Expected internal name to survive, got %v", out["name"])
	}
	cols, _ := out["columns"].(map[string]any)
	if cols["name"] != "From column" {
		t.Errorf("Expected column 'name' kept under columns, got %v", cols["name"])
	}
}
