package schedule

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/exp/slog"
)

var generatorDepartments = []string{"Cardiology", "Neurology", "Surgery", "Orthopedics", "Pediatrics"}

// Generator периодически создает случайные записи через сервис,
// поэтому они проходят валидацию и рассылаются как обычные.
type Generator struct {
	service  Servicer
	interval time.Duration
	now      func() time.Time
	intn     func(n int) int
	log      *slog.Logger
}

func NewGenerator(service Servicer, interval time.Duration, log *slog.Logger) *Generator {
	return &Generator{
		service:  service,
		interval: interval,
		now:      time.Now,
		intn:     rand.IntN,
		log:      log.With("component", "schedule_generator"),
	}
}

func (g *Generator) Run(ctx context.Context) {
	if g.interval <= 0 {
		return
	}

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.log.Info("generator started", "interval", g.interval)

	for {
		select {
		case <-ctx.Done():
			g.log.Info("generator stopped")
			return
		case <-ticker.C:
			if _, err := g.Generate(ctx); err != nil {
				g.log.Error("generate schedule", "error", err)
			}
		}
	}
}

func (g *Generator) Generate(ctx context.Context) (Schedule, error) {
	req := CreateRequest{
		DoctorName:  fmt.Sprintf("Auto Dr %d", g.intn(900)+100),
		PatientName: fmt.Sprintf("Patient %d", g.intn(900)+100),
		Department:  generatorDepartments[g.intn(len(generatorDepartments))],
		DateTime:    g.now().UTC().Format(time.RFC3339),
	}

	return g.service.Create(ctx, req)
}
