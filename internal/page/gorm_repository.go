package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/studycentre/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Level       string    `gorm:"type:text" json:"level"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CourseRecord) TableName() string { return "courses" }

type PageRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Kind         Kind           `gorm:"type:text;not null;index" json:"kind"`
	Course       string         `gorm:"type:text;index" json:"course"`
	Module       int            `gorm:"not null;default:0" json:"module"`
	Section      int            `gorm:"not null;default:0" json:"section"`
	Title        string         `gorm:"type:text;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	LastReviewed util.LocalDate `gorm:"type:date" json:"last_reviewed"`
	Document     datatypes.JSON `gorm:"not null" json:"document"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (PageRecord) TableName() string { return "pages" }

type BankRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string         `gorm:"type:text;not null" json:"title"`
	Course    string         `gorm:"type:text;index" json:"course"`
	Document  datatypes.JSON `gorm:"not null" json:"document"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (BankRecord) TableName() string { return "question_banks" }

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&CourseRecord{}, &PageRecord{}, &BankRecord{})
}

// SeedResult reports how many rows each seed wrote.
type SeedResult struct {
	Courses int `json:"courses"`
	Pages   int `json:"pages"`
	Banks   int `json:"banks"`
}

// Seed upserts the whole library by slug inside one transaction.
func (r *GormRepository) Seed(ctx context.Context, lib *Library) (SeedResult, error) {
	var res SeedResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range lib.Courses {
			rec := CourseRecord{ID: uuid.New(), Slug: c.Slug, Title: c.Title, Description: c.Description, Level: c.Level}
			if err := tx.Clauses(upsertBySlug("title", "description", "level", "updated_at")).Create(&rec).Error; err != nil {
				return fmt.Errorf("seed course %s: %w", c.Slug, err)
			}
			res.Courses++
		}

		for _, p := range lib.Pages {
			doc, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode page %s: %w", p.Slug, err)
			}
			rec := PageRecord{
				ID:           uuid.New(),
				Slug:         p.Slug,
				Kind:         p.Kind,
				Course:       p.Course,
				Module:       p.Module,
				Section:      p.Section,
				Title:        p.Title,
				Description:  p.Description,
				LastReviewed: p.LastReviewed,
				Document:     datatypes.JSON(doc),
			}
			cols := []string{"kind", "course", "module", "section", "title", "description", "last_reviewed", "document", "updated_at"}
			if err := tx.Clauses(upsertBySlug(cols...)).Create(&rec).Error; err != nil {
				return fmt.Errorf("seed page %s: %w", p.Slug, err)
			}
			res.Pages++
		}

		for _, b := range lib.Banks {
			doc, err := json.Marshal(b)
			if err != nil {
				return fmt.Errorf("encode bank %s: %w", b.Slug, err)
			}
			rec := BankRecord{ID: uuid.New(), Slug: b.Slug, Title: b.Title, Course: b.Course, Document: datatypes.JSON(doc)}
			if err := tx.Clauses(upsertBySlug("title", "course", "document", "updated_at")).Create(&rec).Error; err != nil {
				return fmt.Errorf("seed bank %s: %w", b.Slug, err)
			}
			res.Banks++
		}
		return nil
	})
	return res, err
}

func upsertBySlug(columns ...string) clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}
}

func (r *GormRepository) ListCourses(ctx context.Context) ([]Course, error) {
	var records []CourseRecord
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]Course, 0, len(records))
	for _, rec := range records {
		out = append(out, Course{Slug: rec.Slug, Title: rec.Title, Description: rec.Description, Level: rec.Level})
	}
	return out, nil
}

func (r *GormRepository) GetCourse(ctx context.Context, slug string) (*Course, error) {
	var rec CourseRecord
	if err := r.db.WithContext(ctx).First(&rec, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &Course{Slug: rec.Slug, Title: rec.Title, Description: rec.Description, Level: rec.Level}, nil
}

func (r *GormRepository) ListPages(ctx context.Context, course string) ([]*Page, error) {
	q := r.db.WithContext(ctx).Order("course ASC, module ASC, section ASC, slug ASC")
	if course != "" {
		q = q.Where("course = ?", course)
	}
	var records []PageRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	out := make([]*Page, 0, len(records))
	for _, rec := range records {
		p, err := decodePage(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *GormRepository) GetPage(ctx context.Context, slug string) (*Page, error) {
	var rec PageRecord
	if err := r.db.WithContext(ctx).First(&rec, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return decodePage(rec)
}

func (r *GormRepository) ListBanks(ctx context.Context) ([]*QuestionBank, error) {
	var records []BankRecord
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*QuestionBank, 0, len(records))
	for _, rec := range records {
		b, err := decodeBank(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *GormRepository) GetBank(ctx context.Context, slug string) (*QuestionBank, error) {
	var rec BankRecord
	if err := r.db.WithContext(ctx).First(&rec, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBankNotFound
		}
		return nil, err
	}
	return decodeBank(rec)
}

func decodePage(rec PageRecord) (*Page, error) {
	var p Page
	if err := json.Unmarshal(rec.Document, &p); err != nil {
		return nil, fmt.Errorf("decode page %s: %w", rec.Slug, err)
	}
	return &p, nil
}

func decodeBank(rec BankRecord) (*QuestionBank, error) {
	var b QuestionBank
	if err := json.Unmarshal(rec.Document, &b); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", rec.Slug, err)
	}
	return &b, nil
}
