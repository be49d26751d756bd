package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing an Indonesian property address
// It is immutable - all operations return new Address instances
// Fields: City (kota/kabupaten), District (kecamatan), Street (jalan + nomor),
// Province and PostalCode are optional.
type Address struct {
	city       string
	district   string
	street     string
	province   string
	postalCode string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithProvince sets the province for the address
func WithProvince(province string) AddressOption {
	return func(a *Address) {
		a.province = strings.TrimSpace(province)
	}
}

// WithPostalCode sets the postal code for the address
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// NewAddress creates a new Address with the required fields
// City and street are required; district, province, and postal code are optional
func NewAddress(city, district, street string, opts ...AddressOption) (Address, error) {
	city = strings.TrimSpace(city)
	district = strings.TrimSpace(district)
	street = strings.TrimSpace(street)

	if err := validateCity(city); err != nil {
		return Address{}, err
	}
	if err := validateDistrict(district); err != nil {
		return Address{}, err
	}
	if err := validateStreet(street); err != nil {
		return Address{}, err
	}

	addr := Address{
		city:     city,
		district: district,
		street:   street,
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if addr.postalCode != "" && len(addr.postalCode) > 10 {
		return Address{}, fmt.Errorf("postal code cannot exceed 10 characters")
	}
	if len(addr.province) > 100 {
		return Address{}, fmt.Errorf("province cannot exceed 100 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(city, district, street string, opts ...AddressOption) Address {
	addr, err := NewAddress(city, district, street, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// District returns the district
func (a Address) District() string {
	return a.district
}

// Street returns the street line
func (a Address) Street() string {
	return a.street
}

// Province returns the province
func (a Address) Province() string {
	return a.province
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.city == "" && a.district == "" && a.street == ""
}

// FullAddress returns the complete formatted address string
// Format: Street, District, City, Province PostalCode
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 4)
	if a.street != "" {
		parts = append(parts, a.street)
	}
	if a.district != "" {
		parts = append(parts, a.district)
	}
	if a.city != "" {
		parts = append(parts, a.city)
	}
	if a.province != "" {
		parts = append(parts, a.province)
	}
	full := strings.Join(parts, ", ")
	if a.postalCode != "" {
		full = full + " " + a.postalCode
	}
	return full
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.city == other.city &&
		a.district == other.district &&
		a.street == other.street &&
		a.province == other.province &&
		a.postalCode == other.postalCode
}

// SameCity returns true if both addresses are in the same city
func (a Address) SameCity(other Address) bool {
	return strings.EqualFold(a.city, other.city)
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	City       string `json:"city"`
	District   string `json:"district,omitempty"`
	Street     string `json:"street"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		City:       a.city,
		District:   a.district,
		Street:     a.street,
		Province:   a.province,
		PostalCode: a.postalCode,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Delegates to NewAddress so validation rules apply consistently.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if v.City == "" && v.District == "" && v.Street == "" {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.City, v.District, v.Street,
		WithProvince(v.Province), WithPostalCode(v.PostalCode))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval.
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

// Validation functions

func validateCity(city string) error {
	if city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return fmt.Errorf("city cannot exceed 100 characters")
	}
	return nil
}

func validateDistrict(district string) error {
	// District is optional, but if provided must be reasonable length
	if len(district) > 100 {
		return fmt.Errorf("district cannot exceed 100 characters")
	}
	return nil
}

func validateStreet(street string) error {
	if street == "" {
		return fmt.Errorf("street cannot be empty")
	}
	if len(street) > 500 {
		return fmt.Errorf("street cannot exceed 500 characters")
	}
	return nil
}
