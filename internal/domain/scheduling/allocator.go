package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPrefixUnavailable means the clinic's display name is too short to
// derive an appointment-id prefix from.
var ErrPrefixUnavailable = errors.New("clinic name too short for appointment id prefix")

// idPrefix derives the human-readable id prefix from the first three
// characters of a clinic display name. Sliced by rune, not byte, so names
// in non-ASCII scripts keep whole characters.
func idPrefix(clinicName string) (string, error) {
	name := []rune(strings.TrimSpace(clinicName))
	if len(name) < 3 {
		return "", fmt.Errorf("%w: %q", ErrPrefixUnavailable, clinicName)
	}
	return strings.ToUpper(string(name[:3])), nil
}

// nextAppointmentID allocates the next id in the clinic's sequence, e.g.
// SUN-000042. Ids that do not split into exactly prefix and a numeric suffix
// are skipped with a warning rather than poisoning the allocation. The scan
// and the insert are not atomic; the partial unique index on the slot is the
// real arbiter and a lost race surfaces as a unique violation.
func (s *Service) nextAppointmentID(ctx context.Context, clinicName string) (string, error) {
	prefix, err := idPrefix(clinicName)
	if err != nil {
		return "", err
	}

	ids, err := s.repo.ListIDsByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("scan appointment ids: %w", err)
	}

	max := 0
	for _, id := range ids {
		parts := strings.Split(id, "-")
		if len(parts) != 2 {
			s.logger.Warn().Str("appointment_id", id).Msg("skipping malformed appointment id")
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			s.logger.Warn().Str("appointment_id", id).Msg("skipping non-numeric appointment id suffix")
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-%06d", prefix, max+1), nil
}
