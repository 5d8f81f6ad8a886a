package compiler

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewKeywordTable_Capacity(t *testing.T) {
	tests := []struct {
		capacity int
		wantErr  bool
	}{
		{2, false},
		{8, false},
		{512, false},
		{0, true},
		{1, true},
		{3, true},
		{500, true},
		{-4, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.capacity), func(t *testing.T) {
			table, err := NewKeywordTable(tt.capacity)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewKeywordTable(%d) error = %v, wantErr %v", tt.capacity, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCapacity) {
					t.Errorf("error %v does not wrap ErrInvalidCapacity", err)
				}
				return
			}
			if table.Cap() != tt.capacity {
				t.Errorf("Cap() = %d, want %d", table.Cap(), tt.capacity)
			}
		})
	}
}

func TestKeywordTable_SetGet(t *testing.T) {
	table, err := NewKeywordTable(16)
	if err != nil {
		t.Fatal(err)
	}

	for key, tt := range map[string]TokenType{"VAR": VAR, "END_VAR": END_VAR, "IF": IF} {
		if err := table.Set(key, tt); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if got, ok := table.Get("END_VAR"); !ok || got != END_VAR {
		t.Errorf("Get(END_VAR) = %v, %v", got, ok)
	}
	if got, ok := table.Get("end_var"); ok || got != ILLEGAL {
		t.Errorf("Get(end_var) = %v, %v; keys are case-sensitive", got, ok)
	}
	if got, ok := table.Get("WHILE"); ok || got != ILLEGAL {
		t.Errorf("Get(WHILE) = %v, %v, want ILLEGAL, false", got, ok)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}

func TestKeywordTable_DuplicateUpdatesInPlace(t *testing.T) {
	table, _ := NewKeywordTable(4)
	if err := table.Set("VAR", VAR); err != nil {
		t.Fatal(err)
	}
	if err := table.Set("VAR", VAR_TEMP); err != nil {
		t.Fatal(err)
	}
	if got, _ := table.Get("VAR"); got != VAR_TEMP {
		t.Errorf("Get(VAR) = %v, want VAR_TEMP", got)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestKeywordTable_FullGuard(t *testing.T) {
	table, _ := NewKeywordTable(4)

	for i, key := range []string{"A", "B", "C"} {
		if err := table.Set(key, TokenType(i)); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	err := table.Set("D", IDENT)
	if !errors.Is(err, ErrKeywordTableFull) {
		t.Fatalf("Set on full table error = %v, want ErrKeywordTableFull", err)
	}

	// The spare slot keeps lookups of missing keys terminating.
	if _, ok := table.Get("D"); ok {
		t.Error("rejected key should not be stored")
	}
	if err := table.Set("B", END_VAR); err != nil {
		t.Errorf("updating an existing key on a full table should succeed, got %v", err)
	}
}

func TestKeywordTable_CollisionsProbe(t *testing.T) {
	// 31 keys in 32 slots: most probes collide and some wrap around.
	table, _ := NewKeywordTable(32)
	keys := make([]string, 0, 31)
	for i := 0; i < 31; i++ {
		key := fmt.Sprintf("K%d", i)
		keys = append(keys, key)
		if err := table.Set(key, TokenType(i)); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}
	for i, key := range keys {
		if got, ok := table.Get(key); !ok || got != TokenType(i) {
			t.Errorf("Get(%q) = %v, %v, want %v", key, got, ok, TokenType(i))
		}
	}
}

func TestNewDefaultKeywordTable(t *testing.T) {
	table, err := NewDefaultKeywordTable(512)
	if err != nil {
		t.Fatalf("NewDefaultKeywordTable() error = %v", err)
	}

	tests := []struct {
		key  string
		want TokenType
	}{
		{"PROGRAM", PROGRAM},
		{"END_PROGRAM", END_PROGRAM},
		{"ENDPROGRAM", END_PROGRAM},
		{"VAR_INPUT", VAR_INPUT},
		{"VARINPUT", VAR_INPUT},
		{"ENDVAR", END_VAR},
		{"INT", INT},
		{"MOD", MOD},
		{"REFTO", REF_TO},
	}
	for _, tt := range tests {
		if got, ok := table.Get(tt.key); !ok || got != tt.want {
			t.Errorf("Get(%q) = %v, %v, want %v", tt.key, got, ok, tt.want)
		}
	}
	if table.Len() != len(stKeywords) {
		t.Errorf("Len() = %d, want %d", table.Len(), len(stKeywords))
	}
}

func TestNewDefaultKeywordTable_TooSmall(t *testing.T) {
	_, err := NewDefaultKeywordTable(64)
	if !errors.Is(err, ErrKeywordTableFull) {
		t.Errorf("error = %v, want ErrKeywordTableFull", err)
	}
}
