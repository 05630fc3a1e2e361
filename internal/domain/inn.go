package domain

// EntityKind distinguishes the two kinds of registry entries. The wire
// values match the type codes used by the original registry table.
type EntityKind string

const (
	KindLegalEntity            EntityKind = "UL"
	KindIndividualEntrepreneur EntityKind = "IP"
)

const (
	legalEntityINNLength  = 10
	entrepreneurINNLength = 12
)

// KindFromINN infers the entity kind from the structural shape of an INN:
// 10 digits identify a legal entity, 12 an individual entrepreneur. Any
// other shape is a malformed INN.
func KindFromINN(inn string) (EntityKind, error) {
	if !digitsOnly(inn) {
		return "", &NormalizationError{Kind: ErrKindMalformedINN, Field: "inn", Value: inn}
	}
	switch len(inn) {
	case legalEntityINNLength:
		return KindLegalEntity, nil
	case entrepreneurINNLength:
		return KindIndividualEntrepreneur, nil
	default:
		return "", &NormalizationError{Kind: ErrKindMalformedINN, Field: "inn", Value: inn}
	}
}

// ValidINN reports whether the value is a structurally well-formed INN.
// Checksum digits are deliberately not verified.
func ValidINN(inn string) bool {
	_, err := KindFromINN(inn)
	return err == nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
