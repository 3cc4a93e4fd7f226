package conv

import (
	"reflect"
	"testing"
)

func TestConvertSlice(t *testing.T) {
	in := []any{"a", 1, "b", nil}
	got := ConvertSlice(in, func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ConvertSlice() = %v", got)
	}

	if ConvertSlice[any, string](nil, nil) != nil {
		t.Error("nil input must yield nil")
	}
}
