// Package service allocates year-scoped identifiers such as MSNS250001.
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/users/sequences/model"
)

// Format describes how a counter value renders, e.g. "MSNS" + "25" + %04d.
type Format struct {
	Kind   string
	Prefix string
	Digits int
	// Table and Column locate existing numbers so a fresh counter row
	// continues after data created before counters existed.
	Table  string
	Column string
}

var (
	StudentRegistration  = Format{Kind: model.KindStudentRegistration, Prefix: "MSNS", Digits: 4, Table: "students", Column: "registration_number"}
	StudentAdmission     = Format{Kind: model.KindStudentAdmission, Prefix: "S", Digits: 3, Table: "students", Column: "admission_number"}
	EmployeeRegistration = Format{Kind: model.KindEmployeeRegistration, Prefix: "MSNE", Digits: 4, Table: "employees", Column: "registration_number"}
)

// YearPrefix is the two-digit year, e.g. 2025 → "25".
func YearPrefix(year int) string {
	return fmt.Sprintf("%02d", year%100)
}

func (f Format) Render(year int, n int64) string {
	return fmt.Sprintf("%s%s%0*d", f.Prefix, YearPrefix(year), f.Digits, n)
}

// Next allocates the next number for year. It must run inside the caller's
// transaction: the UPDATE holds the counter row lock until commit.
func Next(tx *gorm.DB, f Format, year int) (string, error) {
	yy := year % 100

	var existing model.SequenceModel
	err := tx.Where("kind = ? AND year = ?", f.Kind, yy).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed, err := highestExisting(tx, f, year)
		if err != nil {
			return "", err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.SequenceModel{Kind: f.Kind, Year: yy, Value: seed}).Error; err != nil {
			return "", fmt.Errorf("seed %s counter: %w", f.Kind, err)
		}
	} else if err != nil {
		return "", fmt.Errorf("read %s counter: %w", f.Kind, err)
	}

	if err := tx.Model(&model.SequenceModel{}).
		Where("kind = ? AND year = ?", f.Kind, yy).
		UpdateColumn("value", gorm.Expr("value + 1")).Error; err != nil {
		return "", fmt.Errorf("increment %s counter: %w", f.Kind, err)
	}

	var row model.SequenceModel
	if err := tx.Where("kind = ? AND year = ?", f.Kind, yy).Take(&row).Error; err != nil {
		return "", fmt.Errorf("read %s counter: %w", f.Kind, err)
	}
	return f.Render(year, row.Value), nil
}

// highestExisting parses the largest number already issued for the year.
func highestExisting(tx *gorm.DB, f Format, year int) (int64, error) {
	prefix := f.Prefix + YearPrefix(year)
	var numbers []string
	err := tx.Table(f.Table).
		Where(f.Column+" LIKE ?", prefix+"%").
		Pluck(f.Column, &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("scan existing %s: %w", f.Kind, err)
	}
	var max int64
	for _, n := range numbers {
		v, err := strconv.ParseInt(strings.TrimPrefix(n, prefix), 10, 64)
		if err == nil && v > max {
			max = v
		}
	}
	return max, nil
}
