// Package reconciler orchestrates one confirmed transaction end-to-end:
// balance read, sufficiency check, delta application, alert evaluation, and
// the durable record write. The three shop flows (exchange, sale, purchase)
// share this single workflow; each request kind only decides which bucket is
// consumed, which (if any) is credited, and what the record carries.
//
// The storage layer offers no multi-document transactions, so the sequence
// is strictly ordered within one call and nothing more: concurrent
// reconciliations against the same bucket can lose updates, and a record
// write failing after the delta was applied leaves the books inconsistent.
// Both are logged, neither is compensated.
package reconciler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/kamaljewellers/reserveops-backend/internal/domain"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/ledger"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/notifier"
	"github.com/kamaljewellers/reserveops-backend/internal/usecase/policy"
)

// State tracks a reconciliation through its checkpoints
type State string

const (
	StateInitiated   State = "INITIATED"
	StateBalanceRead State = "BALANCE_READ"
	StateChecked     State = "CHECKED"
	StateBlocked     State = "BLOCKED"
	StateApplying    State = "APPLYING"
	StateApplied     State = "APPLIED"
	StateNotified    State = "NOTIFIED"
	StateRecorded    State = "RECORDED"
	StateFailed      State = "FAILED"
)

// Outcome is what one reconciliation produced
type Outcome struct {
	State      State
	Source     domain.ReserveBucket // the consumed bucket, when there is one
	Available  decimal.Decimal      // balance read before the check
	Remaining  decimal.Decimal      // available minus the consumed amount
	NewBalance decimal.Decimal      // consumed bucket balance after apply
	Record     *domain.TransactionRecord
}

// Service runs the reconciliation workflow
type Service struct {
	Ledger        *ledger.Service
	Notifier      *notifier.Service
	Records       domain.TransactionRecordRepository
	CashMovements domain.CashMovementRepository
}

// NewService creates a new reconciler Service instance
func NewService(
	ledgerSvc *ledger.Service,
	notifierSvc *notifier.Service,
	records domain.TransactionRecordRepository,
	cashMovements domain.CashMovementRepository,
) *Service {
	return &Service{
		Ledger:        ledgerSvc,
		Notifier:      notifierSvc,
		Records:       records,
		CashMovements: cashMovements,
	}
}

// Reconcile runs one confirmed transaction for the named employee.
//
// State machine: INITIATED -> BALANCE_READ -> CHECKED -> {BLOCKED | APPLYING}
// -> APPLIED -> NOTIFIED -> RECORDED, with FAILED reachable from any
// non-terminal state on storage error. A BLOCKED outcome is not an error:
// no writes happened and the caller may only deny, never force-approve.
func (s *Service) Reconcile(ctx context.Context, employee string, req Request) (*Outcome, error) {
	if employee == "" {
		return nil, errors.New("reconciliation requires an employee identity")
	}

	plan, err := req.plan()
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{State: StateInitiated}

	// Out-of-accounts purchases touch no reserve at all; skip straight to
	// the credit/record half of the workflow.
	if plan.consume != nil {
		outcome.Source = plan.consume.bucket

		// BALANCE_READ
		available, err := s.Ledger.GetBalance(ctx, plan.consume.bucket.Kind, plan.consume.bucket.Name)
		if err != nil {
			outcome.State = StateFailed
			return outcome, err
		}
		outcome.State = StateBalanceRead
		outcome.Available = available

		// CHECKED
		suff := policy.CheckSufficiency(available, plan.consume.amount)
		outcome.State = StateChecked
		outcome.Remaining = suff.Remaining

		if suff.Insufficient {
			// Warn the admin even though the transaction is blocked.
			s.notifyBestEffort(ctx, &domain.NotificationEvent{
				ReserveType: plan.consume.bucket.Name,
				Message:     policy.InsufficientMessage(plan.consume.bucket, available),
				Link:        policy.AdminLink(plan.consume.bucket),
			})
			outcome.State = StateBlocked
			return outcome, nil
		}
	}

	// APPLYING: the sale's cash credit lands before its metal debit, the
	// order the terminals have always written in.
	if plan.credit != nil {
		newCash, err := s.Ledger.ApplyDelta(ctx, plan.credit.bucket.Kind, plan.credit.bucket.Name, plan.credit.amount)
		if err != nil {
			outcome.State = StateFailed
			return outcome, err
		}

		movement := &domain.CashMovement{
			ID:         uuid.New(),
			Date:       displayDate(),
			Type:       plan.credit.bucket.Name,
			Change:     plan.credit.amount,
			NewBalance: newCash,
			Reason:     plan.credit.reason,
			By:         employee,
			CreatedAt:  time.Now(),
		}
		if err := s.CashMovements.Create(ctx, movement); err != nil {
			// The cash credit is already in; there is no rollback.
			outcome.State = StateFailed
			log.Printf("reconciler: PARTIAL INCONSISTENCY: %s credited %s but cash movement log failed: %v",
				plan.credit.bucket.Name, plan.credit.amount.String(), err)
			return outcome, domain.NewStorageError("create cash movement", err)
		}
	}

	if plan.consume != nil {
		outcome.State = StateApplying
		newBalance, err := s.Ledger.ApplyDelta(ctx, plan.consume.bucket.Kind, plan.consume.bucket.Name, plan.consume.amount.Neg())
		if err != nil {
			outcome.State = StateFailed
			return outcome, err
		}
		outcome.State = StateApplied
		outcome.NewBalance = newBalance

		// NOTIFIED: low-stock is evaluated against the post-apply balance,
		// independent of the sufficiency check. A notification failure is
		// not a transaction failure.
		if policy.EvaluateLowStock(newBalance) {
			s.notifyBestEffort(ctx, &domain.NotificationEvent{
				ReserveType: plan.consume.bucket.Name,
				Message:     policy.LowStockMessage(plan.consume.bucket, newBalance),
				Link:        policy.AdminLink(plan.consume.bucket),
			})
		}
		outcome.State = StateNotified
	}

	// RECORDED
	record := plan.record
	record.ID = uuid.New()
	record.Employee = employee
	record.Date = displayDate()
	record.CreatedAt = time.Now()

	if err := record.Validate(); err != nil {
		outcome.State = StateFailed
		return outcome, err
	}

	if err := s.Records.Create(ctx, record); err != nil {
		// The bucket deltas are already applied; flag the record gap loudly
		// so operators can reconcile the books by hand.
		outcome.State = StateFailed
		log.Printf("reconciler: PARTIAL INCONSISTENCY: %s deltas applied but record write failed: %v",
			record.Kind, err)
		return outcome, domain.NewStorageError("create transaction record", err)
	}

	outcome.State = StateRecorded
	outcome.Record = record
	return outcome, nil
}

// notifyBestEffort creates a deduplicated alert, logging instead of failing
func (s *Service) notifyBestEffort(ctx context.Context, event *domain.NotificationEvent) {
	if _, err := s.Notifier.NotifyOnce(ctx, event); err != nil {
		log.Printf("reconciler: notification for %s failed: %v", event.ReserveType, err)
	}
}

// displayDate is the dd/mm/yyyy date stamped onto records and movements
func displayDate() string {
	return time.Now().Format("02/01/2006")
}
