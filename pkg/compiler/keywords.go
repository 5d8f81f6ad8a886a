package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned for a keyword table size that is not a power of two.
	ErrInvalidCapacity = errors.New("keyword table capacity must be a power of two >= 2")

	// ErrKeywordTableFull is returned when an insert would leave no empty slot.
	ErrKeywordTableFull = errors.New("keyword table is full")
)

// FNV-1a, 64 bit.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

func hashKey(key string) uint64 {
	h := uint64(fnvOffsetBasis)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime
	}
	return h
}

type keywordEntry struct {
	key   string
	value TokenType
	used  bool
}

// KeywordTable is an open-addressed hash table from upper-case keyword text
// to its TokenType. Keys are compared case-sensitively; the lexer uppercases
// every lexeme before probing.
//
// At least one slot is always empty, so a probe sequence ends either on the
// key or on an empty slot.
type KeywordTable struct {
	entries []keywordEntry
	mask    uint64
	count   int
}

// NewKeywordTable returns an empty table with capacity slots.
func NewKeywordTable(capacity int) (*KeywordTable, error) {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return &KeywordTable{
		entries: make([]keywordEntry, capacity),
		mask:    uint64(capacity - 1),
	}, nil
}

// Set inserts key or overwrites its value.
func (t *KeywordTable) Set(key string, value TokenType) error {
	idx := hashKey(key) & t.mask
	for t.entries[idx].used {
		if t.entries[idx].key == key {
			t.entries[idx].value = value
			return nil
		}
		idx = (idx + 1) & t.mask
	}

	if t.count+1 >= len(t.entries) {
		return fmt.Errorf("%w: cannot insert %q into %d slots", ErrKeywordTableFull, key, len(t.entries))
	}
	t.entries[idx] = keywordEntry{key: key, value: value, used: true}
	t.count++
	return nil
}

// Get returns the TokenType stored for key, or ILLEGAL and false.
func (t *KeywordTable) Get(key string) (TokenType, bool) {
	idx := hashKey(key) & t.mask
	for t.entries[idx].used {
		if t.entries[idx].key == key {
			return t.entries[idx].value, true
		}
		idx = (idx + 1) & t.mask
	}
	return ILLEGAL, false
}

// Len returns the number of stored keys.
func (t *KeywordTable) Len() int { return t.count }

// Cap returns the slot count.
func (t *KeywordTable) Cap() int { return len(t.entries) }

// stKeywords lists every reserved word together with the spellings without
// underscores that some vendors accept (ENDVAR, VARINPUT, ...).
var stKeywords = []struct {
	word string
	tt   TokenType
}{
	{"PROGRAM", PROGRAM},
	{"END_PROGRAM", END_PROGRAM}, {"ENDPROGRAM", END_PROGRAM},
	{"ACTION", ACTION},
	{"END_ACTION", END_ACTION}, {"ENDACTION", END_ACTION},
	{"ACTIONS", ACTIONS},
	{"END_ACTIONS", END_ACTIONS}, {"ENDACTIONS", END_ACTIONS},
	{"CLASS", CLASS},
	{"END_CLASS", END_CLASS}, {"ENDCLASS", END_CLASS},
	{"EXTENDS", EXTENDS},
	{"IMPLEMENTS", IMPLEMENTS},
	{"INTERFACE", INTERFACE},
	{"END_INTERFACE", END_INTERFACE}, {"ENDINTERFACE", END_INTERFACE},
	{"PROPERTY", PROPERTY},
	{"END_PROPERTY", END_PROPERTY}, {"ENDPROPERTY", END_PROPERTY},
	{"METHOD", METHOD},
	{"END_METHOD", END_METHOD}, {"ENDMETHOD", END_METHOD},
	{"FUNCTION", FUNCTION},
	{"END_FUNCTION", END_FUNCTION}, {"ENDFUNCTION", END_FUNCTION},
	{"FUNCTION_BLOCK", FUNCTION_BLOCK}, {"FUNCTIONBLOCK", FUNCTION_BLOCK},
	{"END_FUNCTION_BLOCK", END_FUNCTION_BLOCK}, {"ENDFUNCTIONBLOCK", END_FUNCTION_BLOCK},
	{"TYPE", TYPE},
	{"END_TYPE", END_TYPE}, {"ENDTYPE", END_TYPE},
	{"STRUCT", STRUCT},
	{"END_STRUCT", END_STRUCT}, {"ENDSTRUCT", END_STRUCT},

	{"VAR", VAR},
	{"VAR_INPUT", VAR_INPUT}, {"VARINPUT", VAR_INPUT},
	{"VAR_OUTPUT", VAR_OUTPUT}, {"VAROUTPUT", VAR_OUTPUT},
	{"VAR_IN_OUT", VAR_IN_OUT}, {"VARINOUT", VAR_IN_OUT},
	{"VAR_TEMP", VAR_TEMP}, {"VARTEMP", VAR_TEMP},
	{"VAR_GLOBAL", VAR_GLOBAL}, {"VARGLOBAL", VAR_GLOBAL},
	{"VAR_EXTERNAL", VAR_EXTERNAL},
	{"VAR_CONFIG", VAR_CONFIG},
	{"END_VAR", END_VAR}, {"ENDVAR", END_VAR},
	{"CONSTANT", CONSTANT},
	{"RETAIN", RETAIN},
	{"NON_RETAIN", NON_RETAIN}, {"NONRETAIN", NON_RETAIN},
	{"ABSTRACT", ABSTRACT},
	{"FINAL", FINAL},
	{"OVERRIDE", OVERRIDE},
	{"PUBLIC", PUBLIC},
	{"PRIVATE", PRIVATE},
	{"INTERNAL", INTERNAL},
	{"PROTECTED", PROTECTED},

	{"IF", IF},
	{"THEN", THEN},
	{"ELSIF", ELSIF},
	{"ELSE", ELSE},
	{"END_IF", END_IF}, {"ENDIF", END_IF},
	{"CASE", CASE},
	{"OF", OF},
	{"END_CASE", END_CASE}, {"ENDCASE", END_CASE},
	{"FOR", FOR},
	{"TO", TO},
	{"BY", BY},
	{"DO", DO},
	{"END_FOR", END_FOR}, {"ENDFOR", END_FOR},
	{"WHILE", WHILE},
	{"END_WHILE", END_WHILE}, {"ENDWHILE", END_WHILE},
	{"REPEAT", REPEAT},
	{"UNTIL", UNTIL},
	{"END_REPEAT", END_REPEAT}, {"ENDREPEAT", END_REPEAT},
	{"RETURN", RETURN},
	{"EXIT", EXIT},
	{"CONTINUE", CONTINUE},

	{"INT", INT},
	{"REAL", REAL},
	{"STRING", STRING},
	{"WSTRING", WSTRING},
	{"ARRAY", ARRAY},
	{"POINTER", POINTER},
	{"REF_TO", REF_TO}, {"REFTO", REF_TO},
	{"AT", AT},

	{"MOD", MOD},
	{"AND", AND},
	{"OR", OR},
	{"XOR", XOR},
	{"NOT", NOT},
}

// NewDefaultKeywordTable returns a table of the given capacity holding the
// Structured Text keyword set.
func NewDefaultKeywordTable(capacity int) (*KeywordTable, error) {
	t, err := NewKeywordTable(capacity)
	if err != nil {
		return nil, err
	}
	for _, kw := range stKeywords {
		if err := t.Set(kw.word, kw.tt); err != nil {
			return nil, err
		}
	}
	return t, nil
}
