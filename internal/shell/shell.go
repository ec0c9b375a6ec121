package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"medshop/m/domain"
	"medshop/m/internal/apperr"
	"medshop/m/internal/console"
	"medshop/m/internal/inventory"
	"medshop/m/internal/logger"
	"medshop/m/internal/store"
)

// Records is the store surface the operations need.
type Records interface {
	Add(ctx context.Context, m domain.Medicine) (int64, error)
	Get(ctx context.Context, id int64) (domain.Medicine, error)
	List(ctx context.Context) ([]domain.Medicine, error)
	Search(ctx context.Context, substr string) ([]domain.Medicine, error)
	UpdateField(ctx context.Context, id int64, field store.Field, value any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	LowStock(ctx context.Context, threshold int64) ([]domain.Medicine, error)
	WithExpiry(ctx context.Context) ([]domain.Medicine, error)
}

// Params bundles the shell's collaborators.
type Params struct {
	Records          Records
	Port             console.Port
	Logger           *logger.Logger
	Clock            func() time.Time
	ExpiryWindowDays int
}

// Shell is the interactive menu loop.
type Shell struct {
	records    Records
	io         console.Port
	logg       *logger.Logger
	now        func() time.Time
	expiryDays int
}

func New(p Params) (*Shell, error) {
	if p.Records == nil {
		return nil, fmt.Errorf("records store is required")
	}
	if p.Port == nil {
		return nil, fmt.Errorf("console port is required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if p.Clock == nil {
		p.Clock = time.Now
	}
	if p.ExpiryWindowDays <= 0 {
		p.ExpiryWindowDays = inventory.DefaultExpiryWindowDays
	}
	return &Shell{
		records:    p.Records,
		io:         p.Port,
		logg:       p.Logger,
		now:        p.Clock,
		expiryDays: p.ExpiryWindowDays,
	}, nil
}

type operation struct {
	label string
	name  string
	run   func(s *Shell, ctx context.Context) error
}

func (s *Shell) operations() []operation {
	return []operation{
		{label: "Add Medicine", name: "add", run: (*Shell).add},
		{label: "View All Medicines", name: "list", run: (*Shell).list},
		{label: "Search Medicine", name: "search", run: (*Shell).search},
		{label: "Update Medicine", name: "update", run: (*Shell).update},
		{label: "Delete Medicine", name: "delete", run: (*Shell).delete},
		{label: "Low Stock Alert", name: "low_stock", run: (*Shell).lowStock},
		{label: fmt.Sprintf("Expiry Alert (next %d days)", s.expiryDays), name: "expiry", run: (*Shell).expiry},
	}
}

// Run shows the menu until the operator exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	ops := s.operations()
	exitChoice := fmt.Sprint(len(ops) + 1)

	for {
		s.io.Println("==== Medical Shop Inventory System ====")
		for i, op := range ops {
			s.io.Printf("%d. %s\n", i+1, op.label)
		}
		s.io.Printf("%s. Exit\n", exitChoice)

		choice, err := s.io.Prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) || choice == exitChoice {
			s.io.Println("Exiting... Goodbye!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading menu choice: %w", err)
		}

		op, ok := lookup(ops, choice)
		if !ok {
			s.io.Println("Invalid choice. Try again.")
			s.io.Println()
			continue
		}

		opCtx := s.logg.WithOperation(ctx, op.name)
		s.logg.Debug(opCtx, "operation started")
		if err := op.run(s, opCtx); err != nil {
			if errors.Is(err, io.EOF) {
				s.io.Println()
				s.io.Println("Exiting... Goodbye!")
				return nil
			}
			if fatal := s.report(opCtx, err); fatal != nil {
				return fatal
			}
		}
		s.io.Println()
	}
}

func lookup(ops []operation, choice string) (operation, bool) {
	for i, op := range ops {
		if choice == fmt.Sprint(i+1) {
			return op, true
		}
	}
	return operation{}, false
}

// report prints a failed operation to the operator. Only errors that are not
// application errors (a broken terminal, say) end the session.
func (s *Shell) report(ctx context.Context, err error) error {
	typed := apperr.As(err)
	if typed == nil {
		s.logg.Error(ctx, "operation aborted", err)
		return err
	}
	switch typed.Code() {
	case apperr.CodeValidation, apperr.CodeNotFound:
		s.logg.Debug(ctx, typed.Message())
		s.io.Println(typed.Message())
	default:
		s.logg.Error(ctx, "operation failed", err)
		s.io.Printf("Operation failed: %s\n", describe(typed))
	}
	return nil
}

func describe(e *apperr.Error) string {
	if cause := e.Unwrap(); cause != nil {
		return fmt.Sprintf("%s (%v)", e.Message(), cause)
	}
	return e.Message()
}
