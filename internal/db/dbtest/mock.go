// Package dbtest provides a testify mock of db.Repository.
package dbtest

import (
	"context"
	"time"

	"github.com/jusunglee/kana/internal/db"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ db.Repository = (*MockRepository)(nil)

func (m *MockRepository) RecordTransliteration(ctx context.Context, arg db.RecordTransliterationParams) (db.Transliteration, error) {
	ret := m.Called(ctx, arg)
	return ret.Get(0).(db.Transliteration), ret.Error(1)
}

func (m *MockRepository) GetTransliteration(ctx context.Context, id int64) (db.Transliteration, error) {
	ret := m.Called(ctx, id)
	return ret.Get(0).(db.Transliteration), ret.Error(1)
}

func (m *MockRepository) ListRecentTransliterations(ctx context.Context, limit int32) ([]db.Transliteration, error) {
	ret := m.Called(ctx, limit)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]db.Transliteration), ret.Error(1)
}

func (m *MockRepository) CountTransliterations(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockRepository) DeleteOldTransliterations(ctx context.Context, before time.Time) (int64, error) {
	ret := m.Called(ctx, before)
	return ret.Get(0).(int64), ret.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}
