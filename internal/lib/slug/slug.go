// Package slug строит уникальные слаги для магазинов, категорий и товаров.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gosimple "github.com/gosimple/slug"
)

var ErrEmptySlug = errors.New("slug is empty after normalization")

// ExistsFunc проверяет, занят ли кандидат в нужной области видимости
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Base нормализует каждую часть и склеивает их через дефис; пустые части пропускаются.
func Base(parts ...string) (string, error) {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := gosimple.Make(p); s != "" {
			normalized = append(normalized, s)
		}
	}
	if len(normalized) == 0 {
		return "", ErrEmptySlug
	}
	return strings.Join(normalized, "-"), nil
}

// Unique возвращает base, если он свободен, иначе base-1, base-2 и т.д.
// Проверка и последующая вставка не атомарны: при гонке проигравшая вставка
// упирается в уникальный индекс и получает конфликт.
func Unique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	const op = "slug.Unique"

	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%s: failed to check slug %q: %w", op, candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Generate - Base + Unique одним вызовом
func Generate(ctx context.Context, exists ExistsFunc, parts ...string) (string, error) {
	base, err := Base(parts...)
	if err != nil {
		return "", err
	}
	return Unique(ctx, base, exists)
}
