package seeder

import (
	"context"
	"fmt"

	"skillex/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

// Run inserts the starter skill catalog. Idempotent: existing names are
// left untouched.
func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Spanish", Category: "Language"},
		{Name: "French", Category: "Language"},
		{Name: "Japanese", Category: "Language"},
		{Name: "Guitar", Category: "Music"},
		{Name: "Piano", Category: "Music"},
		{Name: "Singing", Category: "Music"},
		{Name: "Go", Category: "Technology"},
		{Name: "Python", Category: "Technology"},
		{Name: "Web Design", Category: "Technology"},
		{Name: "Photography", Category: "Arts"},
		{Name: "Drawing", Category: "Arts"},
		{Name: "Cooking", Category: "Lifestyle"},
		{Name: "Baking", Category: "Lifestyle"},
		{Name: "Yoga", Category: "Fitness"},
		{Name: "Chess", Category: "Games"},
		{Name: "Public Speaking", Category: "Career"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
