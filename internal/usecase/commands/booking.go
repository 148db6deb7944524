package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	dombooking "courtgrid/internal/domain/booking"
	"courtgrid/internal/domain/slotgrid"
	"courtgrid/internal/infra"
	"courtgrid/internal/pkg/clock"
	"courtgrid/internal/pkg/errs"
	"courtgrid/internal/usecase/queries"
	"courtgrid/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound        = errs.New("resource not found")
	ErrResourceInactive        = errs.New("resource inactive")
	ErrResourceMismatch        = errs.New("resource belongs to another establishment")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingConflict         = errs.New("booking conflicts with an existing booking")
	ErrOutsideOperatingHours   = errs.New("booking falls outside operating hours")
	ErrSlotInPast              = errs.New("slot already elapsed")
	ErrNotRecurring            = errs.New("booking does not belong to a series")
	ErrInvalidSeriesLength     = errs.New("series length out of range")
	ErrSeriesFullyBooked       = errs.New("every date in the series conflicts")
	ErrDuplicateRequest        = errs.New("idempotency key reused with a different request")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	idempotencyTTL = 24 * time.Hour
	maxSeriesWeeks = 52
)

type CreateBookingRequest struct {
	ResourceID  uuid.UUID
	ClientName  string
	ClientPhone string
	Date        slotgrid.Date
	Start       string
	DurationMin int
	// PriceCents overrides the resource tariff when set.
	PriceCents *int64
}

type MoveBookingRequest struct {
	ResourceID uuid.UUID
	Date       slotgrid.Date
	Start      string
}

type CreateSeriesRequest struct {
	ResourceID  uuid.UUID
	ClientName  string
	ClientPhone string
	StartDate   slotgrid.Date
	Weeks       int
	Start       string
	DurationMin int
	PriceCents  *int64
}

type CreateBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type CreateSeriesResult struct {
	SeriesID     uuid.UUID
	BookingIDs   []uuid.UUID
	SkippedDates []string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	MoveBooking(ctx context.Context, bookingID uuid.UUID, req MoveBookingRequest) (*queries.BookingView, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) error
	CancelBooking(ctx context.Context, bookingID uuid.UUID, scope dombooking.CancelScope, fromDate *slotgrid.Date) (int, error)
	CreateSeries(ctx context.Context, req CreateSeriesRequest, userID uuid.UUID) (*CreateSeriesResult, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	events         EventPublisher
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	events EventPublisher,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		events:         events,
		clock:          clk,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(
	ctx context.Context,
	req CreateBookingRequest,
	userID, idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := hashRequest(req)
	expiresAt := uc.clock.Now().Add(idempotencyTTL)

	var createdID uuid.UUID
	replayed := false

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Idempotency().TryInsert(ctx, tx.DB(), idempotencyKey, userID, "POST /bookings", requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if !claimed {
			rec, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
			if err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}
			if rec.ExpiresAt.Before(uc.clock.Now()) {
				rows, err := tx.Idempotency().ClaimExpiredKey(ctx, tx.DB(), idempotencyKey, userID, requestHash, expiresAt)
				if err != nil {
					return errs.Mark(err, ErrIdempotencyCheckFailed)
				}
				if rows == 0 {
					return ErrIdempotencyInProgress
				}
			} else {
				switch rec.Status {
				case "completed":
					if rec.ResultBookingID == nil {
						return errs.New("completed request missing result booking ID")
					}
					createdID = *rec.ResultBookingID
					replayed = true
					return nil
				case "processing":
					if rec.RequestHash != requestHash {
						return ErrDuplicateRequest
					}
					return ErrIdempotencyInProgress
				default:
					return errs.New("invalid idempotency key status")
				}
			}
		}

		entity, err := uc.buildBooking(ctx, tx, req, nil)
		if err != nil {
			return err
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookingConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		createdID = id

		return tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), idempotencyKey, userID, id)
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.bookingQueries.GetByID(ctx, createdID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !replayed {
		uc.publish(ctx, TopicBookingCreated, view)
	}

	return &CreateBookingResult{Booking: view, IsReplayed: replayed}, nil
}

// buildBooking runs every validation that needs transactional reads: the
// resource exists and is active, the slot sits inside the operating window
// and not in the past, and the interval is free. Conflict rows are locked
// FOR UPDATE, so two concurrent requests for the same slot serialize and the
// loser sees the winner's row.
func (uc *bookingUseCaseImpl) buildBooking(
	ctx context.Context,
	tx shared.Tx,
	req CreateBookingRequest,
	seriesID *uuid.UUID,
) (*dombooking.Booking, error) {
	res, est, err := uc.resolveResource(ctx, tx, req.ResourceID)
	if err != nil {
		return nil, err
	}

	if slotgrid.IsSlotInPast(req.Start, req.Date, est.OpenHour, est.CloseHour, uc.clock.Now()) {
		return nil, ErrSlotInPast
	}

	effDate := slotgrid.SlotDate(req.Start, req.Date, est.OpenHour, est.CloseHour)
	if err := validateWindow(est, req.Date, effDate, req.Start, req.DurationMin); err != nil {
		return nil, err
	}

	records, err := tx.Reads().BookingsForWindow(ctx, req.ResourceID, effDate, true)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	candidate := slotgrid.Candidate{
		ResourceID:  req.ResourceID,
		Date:        effDate,
		Start:       req.Start,
		DurationMin: req.DurationMin,
	}
	if slotgrid.HasConflict(candidate, records, uuid.Nil) {
		return nil, ErrBookingConflict
	}

	price := res.PricePerHourCents * int64(req.DurationMin) / 60
	if req.PriceCents != nil {
		price = *req.PriceCents
	}

	entity, err := dombooking.NewBooking(
		est.ID, req.ResourceID,
		req.ClientName, req.ClientPhone,
		effDate, req.Start, req.DurationMin,
		price, seriesID,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return entity, nil
}

func (uc *bookingUseCaseImpl) MoveBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	req MoveBookingRequest,
) (*queries.BookingView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		res, est, err := uc.resolveResource(ctx, tx, req.ResourceID)
		if err != nil {
			return err
		}
		if res.EstablishmentID != snap.EstablishmentID {
			return ErrResourceMismatch
		}

		effDate := slotgrid.SlotDate(req.Start, req.Date, est.OpenHour, est.CloseHour)
		if err := validateWindow(est, req.Date, effDate, req.Start, snap.DurationMin); err != nil {
			return err
		}

		records, err := tx.Reads().BookingsForWindow(ctx, req.ResourceID, effDate, true)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		candidate := slotgrid.Candidate{
			ResourceID:  req.ResourceID,
			Date:        effDate,
			Start:       req.Start,
			DurationMin: snap.DurationMin,
		}
		if slotgrid.HasConflict(candidate, records, bookingID) {
			return ErrBookingConflict
		}

		entity := reconstruct(snap)
		if err := entity.MoveTo(req.ResourceID, effDate, req.Start); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		return tx.Bookings().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	uc.publish(ctx, TopicBookingMoved, view)
	return view, nil
}

func (uc *bookingUseCaseImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status string) error {
	next, err := dombooking.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := reconstruct(snap)
		if err := entity.TransitionTo(next); err != nil {
			return err
		}
		return tx.Bookings().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		return err
	}

	uc.publish(ctx, TopicBookingStatus, map[string]any{
		"booking_id": bookingID,
		"status":     status,
	})
	return nil
}

// CancelBooking cancels the addressed booking, or with a wider scope the
// rest of its weekly series. Returns how many bookings were cancelled.
func (uc *bookingUseCaseImpl) CancelBooking(
	ctx context.Context,
	bookingID uuid.UUID,
	scope dombooking.CancelScope,
	fromDate *slotgrid.Date,
) (int, error) {
	cancelled := 0

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if scope == dombooking.ScopeSingle {
			entity := reconstruct(snap)
			if err := entity.Cancel(); err != nil {
				return err
			}
			if err := tx.Bookings().Update(ctx, tx.DB(), entity); err != nil {
				return err
			}
			cancelled = 1
			return nil
		}

		if snap.SeriesID == nil {
			return ErrNotRecurring
		}
		members, err := tx.Reads().SeriesMembers(ctx, *snap.SeriesID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		cutoff := snap.Date
		if fromDate != nil {
			cutoff = *fromDate
		}

		// Wide scopes reach pending and confirmed members only; anything
		// already started or finished stays on the books.
		ids := make([]uuid.UUID, 0, len(members))
		for _, m := range members {
			status := dombooking.Status(m.Status)
			if status != dombooking.StatusPending && status != dombooking.StatusConfirmed {
				continue
			}
			if scope == dombooking.ScopeFromDate && m.Date.Before(cutoff) {
				continue
			}
			ids = append(ids, m.ID)
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Bookings().CancelByIDs(ctx, tx.DB(), ids); err != nil {
			return err
		}
		cancelled = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if cancelled > 0 {
		uc.publish(ctx, TopicBookingCancelled, map[string]any{
			"booking_id": bookingID,
			"scope":      string(scope),
			"count":      cancelled,
		})
	}
	return cancelled, nil
}

// CreateSeries books the same slot on the same weekday for the given number
// of weeks. Dates already taken are skipped rather than failing the whole
// series; the caller gets both lists back.
func (uc *bookingUseCaseImpl) CreateSeries(
	ctx context.Context,
	req CreateSeriesRequest,
	userID uuid.UUID,
) (*CreateSeriesResult, error) {
	if req.Weeks < 1 || req.Weeks > maxSeriesWeeks {
		return nil, ErrInvalidSeriesLength
	}

	seriesID := uuid.New()
	result := &CreateSeriesResult{SeriesID: seriesID}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.BookingIDs = result.BookingIDs[:0]
		result.SkippedDates = result.SkippedDates[:0]

		for week := 0; week < req.Weeks; week++ {
			date := req.StartDate.AddDays(7 * week)
			single := CreateBookingRequest{
				ResourceID:  req.ResourceID,
				ClientName:  req.ClientName,
				ClientPhone: req.ClientPhone,
				Date:        date,
				Start:       req.Start,
				DurationMin: req.DurationMin,
				PriceCents:  req.PriceCents,
			}

			entity, err := uc.buildBooking(ctx, tx, single, &seriesID)
			if err != nil {
				if errors.Is(err, ErrBookingConflict) || errors.Is(err, ErrSlotInPast) {
					result.SkippedDates = append(result.SkippedDates, date.String())
					continue
				}
				return err
			}

			id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
			if err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					result.SkippedDates = append(result.SkippedDates, date.String())
					continue
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			result.BookingIDs = append(result.BookingIDs, id)
		}

		if len(result.BookingIDs) == 0 {
			return ErrSeriesFullyBooked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, TopicBookingSeriesCreated, map[string]any{
		"series_id": seriesID,
		"created":   len(result.BookingIDs),
		"skipped":   result.SkippedDates,
	})
	return result, nil
}

func (uc *bookingUseCaseImpl) resolveResource(
	ctx context.Context,
	tx shared.Tx,
	resourceID uuid.UUID,
) (*shared.ResourceSnapshot, *shared.EstablishmentSnapshot, error) {
	res, err := tx.Reads().ResourceByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !res.Active {
		return nil, nil, ErrResourceInactive
	}

	est, err := tx.Reads().EstablishmentByID(ctx, res.EstablishmentID)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, est, nil
}

// validateWindow checks that [start, start+duration) lies entirely inside
// the operating segment of its effective date. Bookings never straddle
// midnight: the pre- and post-midnight stretches of a late-closing window
// are separate segments.
func validateWindow(
	est *shared.EstablishmentSnapshot,
	gridDate, effDate slotgrid.Date,
	start string,
	durationMin int,
) error {
	startMin, ok := slotgrid.MinuteOfDay(start)
	if !ok || startMin%slotgrid.SlotMinutes != 0 {
		return ErrOutsideOperatingHours
	}

	openMin := est.OpenHour * 60
	if !effDate.Equal(gridDate) {
		openMin = 0
	}
	closeMin := slotgrid.ClosingMinute(effDate, gridDate, est.CloseHour)

	if startMin < openMin || startMin+durationMin > closeMin {
		return ErrOutsideOperatingHours
	}
	return nil
}

func reconstruct(snap *shared.BookingSnapshot) *dombooking.Booking {
	return dombooking.ReconstructBooking(
		snap.ID, snap.EstablishmentID, snap.ResourceID,
		snap.ClientName, snap.ClientPhone,
		snap.Date, snap.Start,
		snap.DurationMin, snap.EndMin,
		dombooking.Status(snap.Status),
		snap.PriceCents, snap.SeriesID,
		time.Time{}, time.Time{},
	)
}

func (uc *bookingUseCaseImpl) publish(ctx context.Context, topic string, payload any) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, topic, payload); err != nil {
		slog.Warn("failed to publish booking event", "topic", topic, "error", err)
	}
}

func hashRequest(req any) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
