package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReserveKind groups reserve buckets by what they hold
type ReserveKind string

const (
	ReserveKindGold   ReserveKind = "GOLD"
	ReserveKindSilver ReserveKind = "SILVER"
	ReserveKindCash   ReserveKind = "CASH"
)

// Fixed bucket vocabulary. Buckets are singletons identified by (kind, name);
// no other names are valid.
const (
	ReserveLocalGold   = "LOCAL GOLD"
	ReserveBankGold    = "BANK GOLD"
	ReserveLocalSilver = "LOCAL SILVER"
	ReserveKamalSilver = "KAMAL SILVER"
	ReserveLedger      = "LEDGER"
	ReserveOnline      = "ONLINE"
)

// ReserveNames returns the valid bucket names for a kind
func ReserveNames(kind ReserveKind) []string {
	switch kind {
	case ReserveKindGold:
		return []string{ReserveLocalGold, ReserveBankGold}
	case ReserveKindSilver:
		return []string{ReserveLocalSilver, ReserveKamalSilver}
	case ReserveKindCash:
		return []string{ReserveLedger, ReserveOnline}
	default:
		return nil
	}
}

// ReserveBucket identifies one named stock pool (e.g. LOCAL GOLD, LEDGER)
type ReserveBucket struct {
	Kind ReserveKind
	Name string
}

// Validate ensures the bucket name belongs to the kind's fixed vocabulary
func (b ReserveBucket) Validate() error {
	names := ReserveNames(b.Kind)
	if names == nil {
		return fmt.Errorf("unknown reserve kind %q", b.Kind)
	}
	for _, n := range names {
		if b.Name == n {
			return nil
		}
	}
	return fmt.Errorf("reserve name %q is not valid for kind %s", b.Name, b.Kind)
}

// Unit returns the display unit suffix for balances of this bucket:
// grams for metal, nothing for cash.
func (b ReserveBucket) Unit() string {
	if b.Kind == ReserveKindCash {
		return ""
	}
	return "g"
}

// ReserveDocument is one stored balance document for a bucket.
// Duplicate documents per (kind, name) are possible; reads treat the
// highest-valued one as authoritative (see usecase/ledger).
type ReserveDocument struct {
	ID      uuid.UUID
	Kind    ReserveKind
	Type    string // bucket name, stored under the original field name
	Balance decimal.Decimal
}

// Validate ensures the document references a known bucket
func (d *ReserveDocument) Validate() error {
	if d.ID == uuid.Nil {
		return errors.New("reserve document must have an ID")
	}
	return ReserveBucket{Kind: d.Kind, Name: d.Type}.Validate()
}

// MetalKind maps a metal type (GOLD/SILVER) onto its reserve kind
func MetalKind(metal MetalType) (ReserveKind, error) {
	switch metal {
	case MetalGold:
		return ReserveKindGold, nil
	case MetalSilver:
		return ReserveKindSilver, nil
	default:
		return "", fmt.Errorf("unknown metal type %q", metal)
	}
}
