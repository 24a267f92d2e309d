package parcel

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created through
	// the NewParcel or RestoreParcel factory methods.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")
)

// UrgencyWindow is how far ahead of a parcel's reminder the read paths flag it
// urgent. Derived on read, never persisted.
const UrgencyWindow = 24 * time.Hour

// ScanResult is the outcome of a packaging-line scan attempt.
// A mismatch is non-fatal and retryable; it never mutates state.
type ScanResult int

const (
	// ScanMismatch means the scanned SKU did not match any remaining line.
	ScanMismatch ScanResult = iota

	// ScanMatched means one line was confirmed by the scan.
	ScanMatched
)

// String returns the human-readable name of the scan result.
func (r ScanResult) String() string {
	if r == ScanMatched {
		return "Matched"
	}
	return "Mismatch"
}

// Draft carries the client-entered fields for a new parcel.
// Validation happens in NewParcel; a Draft itself has no invariants.
type Draft struct {
	ClientName string
	Phone      string
	City       string
	District   string
	ProductRef string
	SKU        string
	UnitCount  int
	Price      kernel.Money
	Comment    string
}

// Parcel is one client order tracked through the fulfillment pipeline.
// It is the aggregate root for the lifecycle stage machine and for the
// packaging lines that gate dispatch.
//
// Parcel follows these invariants:
//   - The stage is always a member of the stage set of the parcel's pipeline
//     variant; cross-namespace stages cannot be represented.
//   - Stage changes only happen through Transition and BeginPackaging, which
//     enforce the pipeline's transition graph.
//   - The parcel may leave the labeling stage only when every packaging line
//     is scanned.
//   - Parcels are never deleted; terminal stages close the lifecycle.
//   - Can only be created through NewParcel or RestoreParcel.
type Parcel struct {
	id      kernel.UUID
	variant pipeline.Variant
	stage   pipeline.Stage

	employee   *kernel.UUID
	clientName string
	phone      string
	city       string
	district   string
	productRef string
	sku        string
	unitCount  int
	price      kernel.Money
	comment    string

	reminderAt *time.Time
	createdAt  time.Time

	lines []*PackagingLine

	isConstructed bool
}

// NewParcel creates a parcel in the pipeline's initial stage.
// The draft is rejected if required fields (client, phone, product) are
// missing, the unit count is below 1, or the price is negative (an invalid
// draft); price validation already happened when the Money was constructed.
func NewParcel(id kernel.UUID, variant pipeline.Variant, draft Draft, now time.Time) (*Parcel, error) {
	p := &Parcel{
		stage:         pipeline.New,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setVariant(variant),
		p.setClientName(draft.ClientName),
		p.setPhone(draft.Phone),
		p.setProduct(draft.ProductRef, draft.SKU),
		p.setUnitCount(draft.UnitCount),
	); err != nil {
		return nil, err
	}

	p.city = draft.City
	p.district = draft.District
	p.price = draft.Price
	p.comment = draft.Comment

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, including its
// packaging lines and reminder bookkeeping.
func RestoreParcel(
	id kernel.UUID,
	variant pipeline.Variant,
	stage pipeline.Stage,
	draft Draft,
	employee *kernel.UUID,
	reminderAt *time.Time,
	createdAt time.Time,
	lines []*PackagingLine,
) (*Parcel, error) {
	p, err := NewParcel(id, variant, draft, createdAt)
	if err != nil {
		return nil, err
	}

	if err = stage.Validate(); err != nil {
		return nil, err
	}
	if employee != nil {
		if err = employee.Validate(); err != nil {
			return nil, err
		}
	}

	p.stage = stage
	p.employee = employee
	p.reminderAt = reminderAt
	p.lines = lines
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// Variant returns the pipeline variant that owns this parcel.
func (p *Parcel) Variant() pipeline.Variant {
	return p.variant
}

// Stage returns the parcel's current semantic stage.
func (p *Parcel) Stage() pipeline.Stage {
	return p.stage
}

// StageName returns the stage's name in the parcel's pipeline namespace,
// e.g. "Confirmed" for the default variant and "Confirmed-R" for the regional one.
func (p *Parcel) StageName() string {
	name, err := pipeline.NameFor(p.variant, p.stage)
	if err != nil {
		return p.stage.String()
	}
	return name
}

// Employee returns the assigned agent's ID, or nil if unassigned.
func (p *Parcel) Employee() *kernel.UUID {
	return p.employee
}

// ClientName returns the client's display name.
func (p *Parcel) ClientName() string {
	return p.clientName
}

// Phone returns the client's phone number.
func (p *Parcel) Phone() string {
	return p.phone
}

// City returns the destination city reference.
func (p *Parcel) City() string {
	return p.city
}

// District returns the destination district.
func (p *Parcel) District() string {
	return p.district
}

// ProductRef returns the ordered product's reference.
func (p *Parcel) ProductRef() string {
	return p.productRef
}

// SKU returns the product's stock-keeping unit.
func (p *Parcel) SKU() string {
	return p.sku
}

// UnitCount returns the ordered quantity.
func (p *Parcel) UnitCount() int {
	return p.unitCount
}

// Price returns the parcel's price, collected as cash on delivery.
func (p *Parcel) Price() kernel.Money {
	return p.price
}

// Comment returns the free-text note on the parcel.
func (p *Parcel) Comment() string {
	return p.comment
}

// ReminderAt returns when the parcel should be revisited, or nil.
func (p *Parcel) ReminderAt() *time.Time {
	return p.reminderAt
}

// CreatedAt returns the creation timestamp.
func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// PackagingLines returns the parcel's scan-tracking lines.
// Empty until the parcel enters the labeling stage.
func (p *Parcel) PackagingLines() []*PackagingLine {
	return p.lines
}

// IsUrgent reports whether the parcel's reminder falls within the urgency
// window of now. Past-due reminders stay urgent. Purely derived.
func (p *Parcel) IsUrgent(now time.Time) bool {
	if p.reminderAt == nil {
		return false
	}
	return p.reminderAt.Sub(now) <= UrgencyWindow
}

// Transition moves the parcel to the target stage.
//
// Rules:
//   - A request for the current stage is a no-op success, supporting
//     idempotent retries from the UI layer.
//   - The target must be reachable under the pipeline's transition graph.
//   - Leaving the labeling stage for Dispatched requires every packaging
//     line to be scanned; the check runs here so a stale UI cannot bypass it.
//   - Entering Postponed stores reminderAt when one is supplied.
func (p *Parcel) Transition(target pipeline.Stage, reminderAt *time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == p.stage {
		return nil
	}

	if !p.stage.CanTransitionTo(target) {
		return errs.NewIllegalTransitionError(p.StageName(), p.stageNameFor(target))
	}

	if p.stage == pipeline.Packaging && target == pipeline.Dispatched && !p.ReadyForDispatch() {
		return errs.NewIncompleteScanError(p.id.String(), p.unscannedCount())
	}

	p.stage = target
	if target == pipeline.Postponed && reminderAt != nil {
		p.reminderAt = reminderAt
	}
	return nil
}

// Reassign assigns the parcel to another agent.
// Allowed in any non-terminal stage.
func (p *Parcel) Reassign(employee kernel.UUID) error {
	if err := employee.Validate(); err != nil {
		return err
	}
	if p.stage.IsTerminal() {
		return errs.NewTerminalStateError(p.id.String(), p.StageName())
	}

	p.employee = &employee
	return nil
}

// BeginPackaging promotes a confirmed parcel to the labeling stage and
// materializes one unscanned packaging line per ordered unit.
func (p *Parcel) BeginPackaging() error {
	if p.stage != pipeline.Confirmed {
		return errs.NewIllegalTransitionError(p.StageName(), p.stageNameFor(pipeline.Packaging))
	}

	lines := make([]*PackagingLine, 0, p.unitCount)
	for i := 0; i < p.unitCount; i++ {
		line, err := newPackagingLine(p.id, p.productRef, p.sku)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	p.stage = pipeline.Packaging
	p.lines = lines
	return nil
}

// ScanLine confirms one remaining packaging line if sku matches exactly.
// Returns ScanMismatch without mutating state when the SKU is wrong or no
// unscanned line remains.
func (p *Parcel) ScanLine(sku string) ScanResult {
	if p.stage != pipeline.Packaging {
		return ScanMismatch
	}

	for _, line := range p.lines {
		if !line.scanned && line.sku == sku {
			line.scanned = true
			return ScanMatched
		}
	}
	return ScanMismatch
}

// ReadyForDispatch reports whether the parcel is in the labeling stage with
// every packaging line scanned. Gates the transition to Dispatched.
func (p *Parcel) ReadyForDispatch() bool {
	if p.stage != pipeline.Packaging || len(p.lines) == 0 {
		return false
	}
	return p.unscannedCount() == 0
}

func (p *Parcel) unscannedCount() int {
	count := 0
	for _, line := range p.lines {
		if !line.scanned {
			count++
		}
	}
	return count
}

func (p *Parcel) stageNameFor(s pipeline.Stage) string {
	name, err := pipeline.NameFor(p.variant, s)
	if err != nil {
		return s.String()
	}
	return name
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setVariant(variant pipeline.Variant) error {
	if err := variant.Validate(); err != nil {
		return err
	}
	p.variant = variant
	return nil
}

func (p *Parcel) setClientName(clientName string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	p.clientName = clientName
	return nil
}

func (p *Parcel) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	p.phone = phone
	return nil
}

func (p *Parcel) setProduct(productRef, sku string) error {
	if productRef == "" {
		return errs.NewValueIsRequiredError("productRef")
	}
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	p.productRef = productRef
	p.sku = sku
	return nil
}

func (p *Parcel) setUnitCount(unitCount int) error {
	if unitCount < 1 {
		return errs.NewValueIsInvalidError("unitCount")
	}
	p.unitCount = unitCount
	return nil
}
