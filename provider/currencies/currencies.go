// Package currencies holds the ISO symbols of the currencies covered
// by the acquisition chains, as the public rate APIs expect them
package currencies

// Symbol is an ISO 4217 currency symbol
type Symbol string

const (
	USD Symbol = "USD"
	EGP Symbol = "EGP"
	IQD Symbol = "IQD"
	JOD Symbol = "JOD"
	SYP Symbol = "SYP"
	LBP Symbol = "LBP"
)

func (s Symbol) String() string {
	return string(s)
}
