package eventtypes

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// slugify приводит название к URL-безопасному виду:
// нижний регистр, не-алфавитно-цифровые символы схлопываются в дефис
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // отрезаем ведущие дефисы

	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		slug = "event"
	}
	if len(slug) > domain.MaxSlugLength-domain.SlugSuffixLength-1 {
		slug = slug[:domain.MaxSlugLength-domain.SlugSuffixLength-1]
		slug = strings.TrimRight(slug, "-")
	}
	return slug
}

// randomSuffix возвращает короткий случайный суффикс для разрешения коллизий
func randomSuffix() string {
	return uuid.NewString()[:domain.SlugSuffixLength]
}

// generateSlug подбирает свободный slug: сначала пробуем базовый,
// при занятости добавляем случайный суффикс
func (s *Service) generateSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)

	exists, err := s.eventTypeRepo.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("%w: generateSlug - check slug: %v", ErrInternal, err)
	}
	if !exists {
		return base, nil
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%s", base, randomSuffix())
		exists, err := s.eventTypeRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: generateSlug - check slug: %v", ErrInternal, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: generateSlug - no free slug for %q", ErrInternal, base)
}

const maxSlugAttempts = 5
