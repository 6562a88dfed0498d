package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

const defaultTimezone = "Africa/Addis_Ababa"

var DefaultLocations = []domain.Location{
	{Name: "Bole Innovation Hub", City: "Addis Ababa", Address: "Bole Atlas, Woreda 03", Timezone: defaultTimezone, SupportPhone: "+251911000001"},
	{Name: "Kazanchis Skyline Center", City: "Addis Ababa", Address: "Kazanchis, Africa Avenue", Timezone: defaultTimezone, SupportPhone: "+251911000002"},
	{Name: "CMC Tech Park", City: "Addis Ababa", Address: "CMC Michael, Sunshine Tower", Timezone: defaultTimezone, SupportPhone: "+251911000003"},
	{Name: "Sarbet Creative Campus", City: "Addis Ababa", Address: "Old Airport, Sarbet Road", Timezone: defaultTimezone, SupportPhone: "+251911000004"},
}

type LocationSeeder interface {
	Count(ctx context.Context) (int64, error)
	EnsureByName(ctx context.Context, l *domain.Location) error
}

// SeedDefaultLocations fills an empty locations table. A table that already
// has rows is left alone.
func SeedDefaultLocations(ctx context.Context, repo LocationSeeder) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, loc := range DefaultLocations {
		l := loc
		if err := repo.EnsureByName(ctx, &l); err != nil {
			return created, fmt.Errorf("seed location %q: %w", loc.Name, err)
		}
		created++
	}
	logrus.WithField("count", created).Info("[CATALOG] seeded default locations")
	return created, nil
}
