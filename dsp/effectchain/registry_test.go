package effectchain

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-master/dsp/param"
)

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	factory := func(Context) (Processor, error) { return &stubProc{}, nil }
	tooMany := make([]param.Descriptor, param.MaxCells+1)
	for i := range tooMany {
		tooMany[i] = param.Descriptor{Name: string(rune('a'+i%26)) + string(rune('a'+i/26)), Max: 1}
	}

	tests := []struct {
		name    string
		typ     ModuleType
		params  []param.Descriptor
		factory Factory
	}{
		{"invalid type", ModuleType(-1), nil, factory},
		{"nil factory", TypeTremolo, nil, nil},
		{"duplicate type", TypeCompressor, nil, factory},
		{"duplicate parameter", TypeTremolo, []param.Descriptor{{Name: "x"}, {Name: "x"}}, factory},
		{"empty parameter name", TypeTremolo, []param.Descriptor{{Name: ""}}, factory},
		{"too many parameters", TypeTremolo, tooMany, factory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewRegistry()
			r.MustRegister(TypeCompressor, stubParams, factory)

			if err := r.Register(tt.typ, tt.params, tt.factory); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister did not panic")
		}
	}()

	NewRegistry().MustRegister(TypeCompressor, nil, nil)
}

func TestRegistryDescriptorsAreCopies(t *testing.T) {
	t.Parallel()

	r := stubRegistry()
	d := r.Descriptors(TypeCompressor)
	d[0].Name = "changed"

	if r.Descriptors(TypeCompressor)[0].Name != "add" {
		t.Fatal("Descriptors exposed registry storage")
	}
	if r.Descriptors(TypeTremolo) != nil {
		t.Fatal("unregistered type returned descriptors")
	}
	if got := r.Types(); len(got) != 3 || got[0] != TypeCompressor || got[1] != TypeLimiter {
		t.Fatalf("Types() = %v", got)
	}
}

func TestRegistryInvalidTypeError(t *testing.T) {
	t.Parallel()

	err := NewRegistry().Register(ModuleType(42), nil, func(Context) (Processor, error) { return nil, nil })
	if !errors.Is(err, ErrUnknownModuleType) {
		t.Fatalf("error = %v, want ErrUnknownModuleType", err)
	}
}
