// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "June", MonthName(6))
	assert.Equal(t, "December", MonthName(12))
}

func TestMonthNameOutOfRange(t *testing.T) {
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
	assert.Empty(t, MonthName(-1))
}
