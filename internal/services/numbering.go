package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/packytong/Flowaccount/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextDocumentNumber allocates the next number for a document type, formed as
// <prefix><YYYYMM><4-digit sequence>, e.g. QT2026020001. The sequence is
// scoped per type per calendar month and restarts at 0001 on month boundaries.
//
// The counter row is bumped with an atomic upsert so two transactions
// allocating concurrently cannot produce the same number. Call it inside the
// same transaction that creates the document so an aborted create does not
// burn visible numbers on sqlite (postgres may skip, which is fine).
func NextDocumentNumber(tx *gorm.DB, docType models.DocType, now time.Time) (string, error) {
	if !docType.Valid() {
		return "", models.ErrInvalidDocType
	}
	period := now.Format("200601")
	ctr := models.DocCounter{DocType: string(docType), Period: period, Seq: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_type"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]any{"seq": gorm.Expr("doc_counters.seq + 1")}),
	}).Create(&ctr).Error
	if err != nil {
		return "", fmt.Errorf("bump doc counter: %w", err)
	}
	var out models.DocCounter
	if err := tx.Where("doc_type = ? AND period = ?", docType, period).First(&out).Error; err != nil {
		return "", fmt.Errorf("read doc counter: %w", err)
	}
	return fmt.Sprintf("%s%s%04d", docType.Prefix(), period, out.Seq), nil
}

// SeedCounters initializes doc_counters from the highest existing document
// number per type and month. Used when adopting a database created before
// the counter table existed; bumping an already-seeded counter is a no-op
// because the seeded seq is only ever raised.
func SeedCounters(db *gorm.DB) (int, error) {
	seeded := 0
	for _, docType := range models.AllDocTypes() {
		prefix := docType.Prefix()
		type row struct {
			Period string
			MaxNum string
		}
		var rows []row
		// doc_number layout: <prefix><YYYYMM><seq4>
		periodExpr := fmt.Sprintf("substr(doc_number, %d, 6)", len(prefix)+1)
		q := db.Model(&models.Document{}).
			Select(periodExpr + " AS period, max(doc_number) AS max_num").
			Where("doc_type = ?", docType).
			Group(periodExpr)
		if err := q.Scan(&rows).Error; err != nil {
			return seeded, fmt.Errorf("scan max numbers for %s: %w", docType, err)
		}
		for _, r := range rows {
			if len(r.MaxNum) < 4 {
				continue
			}
			var seq int
			if _, err := fmt.Sscanf(r.MaxNum[len(r.MaxNum)-4:], "%04d", &seq); err != nil {
				continue
			}
			var existing models.DocCounter
			err := db.Where("doc_type = ? AND period = ?", docType, r.Period).First(&existing).Error
			switch {
			case err == nil:
				if existing.Seq >= seq {
					continue
				}
				if err := db.Model(&existing).Update("seq", seq).Error; err != nil {
					return seeded, fmt.Errorf("raise counter %s/%s: %w", docType, r.Period, err)
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				ctr := models.DocCounter{DocType: string(docType), Period: r.Period, Seq: seq}
				if err := db.Create(&ctr).Error; err != nil {
					return seeded, fmt.Errorf("seed counter %s/%s: %w", docType, r.Period, err)
				}
			default:
				return seeded, fmt.Errorf("read counter %s/%s: %w", docType, r.Period, err)
			}
			seeded++
		}
	}
	return seeded, nil
}
