package maintenance

import (
	"strings"
	"time"

	"courtgrid/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyDescription   = errs.New("maintenance description required")
	ErrDescriptionTooLong = errs.New("maintenance description too long")
	ErrAlreadyResolved    = errs.New("maintenance report already resolved")
)

const MaxDescriptionLength = 1000

// Report is a maintenance issue raised against a court or amenity: a broken
// net, a flooded surface. Open reports are surfaced next to the grid so
// operators avoid booking a damaged resource.
type Report struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	reportedBy  uuid.UUID
	description string
	resolved    bool
	resolvedAt  *time.Time
	createdAt   time.Time
}

func NewReport(resourceID, reportedBy uuid.UUID, description string) (*Report, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &Report{
		id:          uuid.New(),
		resourceID:  resourceID,
		reportedBy:  reportedBy,
		description: description,
	}, nil
}

func ReconstructReport(
	id, resourceID, reportedBy uuid.UUID,
	description string,
	resolved bool,
	resolvedAt *time.Time,
	createdAt time.Time,
) *Report {
	return &Report{
		id:          id,
		resourceID:  resourceID,
		reportedBy:  reportedBy,
		description: description,
		resolved:    resolved,
		resolvedAt:  resolvedAt,
		createdAt:   createdAt,
	}
}

func (r *Report) ID() uuid.UUID          { return r.id }
func (r *Report) ResourceID() uuid.UUID  { return r.resourceID }
func (r *Report) ReportedBy() uuid.UUID  { return r.reportedBy }
func (r *Report) Description() string    { return r.description }
func (r *Report) Resolved() bool         { return r.resolved }
func (r *Report) ResolvedAt() *time.Time { return r.resolvedAt }
func (r *Report) CreatedAt() time.Time   { return r.createdAt }

func (r *Report) Resolve(now time.Time) error {
	if r.resolved {
		return ErrAlreadyResolved
	}
	r.resolved = true
	r.resolvedAt = &now
	return nil
}
