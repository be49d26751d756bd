package valueobject

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name        string
		city        string
		district    string
		street      string
		opts        []AddressOption
		wantErr     bool
		errContains string
	}{
		{
			name:     "valid address with required fields",
			city:     "Yogyakarta",
			district: "Depok",
			street:   "Jl. Kaliurang KM 5 No. 21",
		},
		{
			name:   "valid address without district",
			city:   "Bandung",
			street: "Jl. Dago No. 100",
		},
		{
			name:     "valid address with province and postal code",
			city:     "Jakarta Selatan",
			district: "Kebayoran Baru",
			street:   "Jl. Senopati No. 8",
			opts:     []AddressOption{WithProvince("DKI Jakarta"), WithPostalCode("12110")},
		},
		{
			name:        "empty city",
			city:        "",
			street:      "Jl. Dago No. 100",
			wantErr:     true,
			errContains: "city cannot be empty",
		},
		{
			name:        "empty street",
			city:        "Bandung",
			street:      "",
			wantErr:     true,
			errContains: "street cannot be empty",
		},
		{
			name:        "city too long",
			city:        strings.Repeat("a", 101),
			street:      "Jl. Dago No. 100",
			wantErr:     true,
			errContains: "cannot exceed 100 characters",
		},
		{
			name:        "street too long",
			city:        "Bandung",
			street:      strings.Repeat("a", 501),
			wantErr:     true,
			errContains: "cannot exceed 500 characters",
		},
		{
			name:        "postal code too long",
			city:        "Bandung",
			street:      "Jl. Dago No. 100",
			opts:        []AddressOption{WithPostalCode("12345678901")},
			wantErr:     true,
			errContains: "postal code cannot exceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewAddress(tt.city, tt.district, tt.street, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.city, addr.City())
			assert.Equal(t, tt.district, addr.District())
			assert.Equal(t, tt.street, addr.Street())
		})
	}
}

func TestAddressTrimsWhitespace(t *testing.T) {
	addr, err := NewAddress("  Malang  ", " Lowokwaru ", "  Jl. Veteran No. 1  ")
	require.NoError(t, err)
	assert.Equal(t, "Malang", addr.City())
	assert.Equal(t, "Lowokwaru", addr.District())
	assert.Equal(t, "Jl. Veteran No. 1", addr.Street())
}

func TestAddressFullAddress(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		addr := MustNewAddress("Yogyakarta", "Depok", "Jl. Kaliurang KM 5",
			WithProvince("DI Yogyakarta"), WithPostalCode("55281"))
		assert.Equal(t, "Jl. Kaliurang KM 5, Depok, Yogyakarta, DI Yogyakarta 55281", addr.FullAddress())
	})

	t.Run("minimal fields", func(t *testing.T) {
		addr := MustNewAddress("Bandung", "", "Jl. Dago No. 100")
		assert.Equal(t, "Jl. Dago No. 100, Bandung", addr.FullAddress())
	})

	t.Run("empty address", func(t *testing.T) {
		assert.Empty(t, EmptyAddress().FullAddress())
	})
}

func TestAddressSameCity(t *testing.T) {
	a := MustNewAddress("Yogyakarta", "Depok", "Jl. Kaliurang KM 5")
	b := MustNewAddress("yogyakarta", "Mlati", "Jl. Magelang KM 7")
	c := MustNewAddress("Bandung", "", "Jl. Dago No. 100")

	assert.True(t, a.SameCity(b))
	assert.False(t, a.SameCity(c))
}

func TestAddressEquals(t *testing.T) {
	a := MustNewAddress("Yogyakarta", "Depok", "Jl. Kaliurang KM 5")
	b := MustNewAddress("Yogyakarta", "Depok", "Jl. Kaliurang KM 5")
	c := MustNewAddress("Yogyakarta", "Depok", "Jl. Kaliurang KM 6")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestAddressJSON(t *testing.T) {
	t.Run("round trips through JSON", func(t *testing.T) {
		original := MustNewAddress("Jakarta Selatan", "Kebayoran Baru", "Jl. Senopati No. 8",
			WithProvince("DKI Jakarta"), WithPostalCode("12110"))

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Address
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, original.Equals(decoded))
	})

	t.Run("decodes empty object as empty address", func(t *testing.T) {
		var decoded Address
		require.NoError(t, json.Unmarshal([]byte(`{"city":"","street":""}`), &decoded))
		assert.True(t, decoded.IsEmpty())
	})

	t.Run("rejects invalid address from JSON", func(t *testing.T) {
		var decoded Address
		err := json.Unmarshal([]byte(`{"city":"Bandung","street":""}`), &decoded)
		require.Error(t, err)
	})
}

func TestAddressScan(t *testing.T) {
	t.Run("scans JSON bytes", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan([]byte(`{"city":"Malang","street":"Jl. Veteran No. 1"}`)))
		assert.Equal(t, "Malang", addr.City())
	})

	t.Run("scans nil as empty", func(t *testing.T) {
		var addr Address
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var addr Address
		require.Error(t, addr.Scan(42))
	})
}

func TestAddressValue(t *testing.T) {
	t.Run("empty address stores NULL", func(t *testing.T) {
		v, err := EmptyAddress().Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("non-empty address stores JSON", func(t *testing.T) {
		addr := MustNewAddress("Bandung", "", "Jl. Dago No. 100")
		v, err := addr.Value()
		require.NoError(t, err)
		require.NotNil(t, v)
	})
}
