package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Procesia/docs_service/internal/domain"
)

// Version values are strings but sort numerically whenever they parse as
// numbers: ["2","10","1"] orders as 1, 2, 10. Unparseable values sort after
// every numeric one (lexicographically among themselves) and missing values
// sort last, so mixed inputs never fail to order.
const (
	rankNumeric = iota
	rankText
	rankMissing
)

func versionRank(value string) (int, float64) {
	value = strings.TrimSpace(value)
	if value == "" {
		return rankMissing, 0
	}
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return rankNumeric, number
	}
	return rankText, 0
}

func compareVersionValues(a, b string) int {
	rankA, numberA := versionRank(a)
	rankB, numberB := versionRank(b)
	if rankA != rankB {
		return rankA - rankB
	}
	switch rankA {
	case rankNumeric:
		switch {
		case numberA < numberB:
			return -1
		case numberA > numberB:
			return 1
		}
		return 0
	case rankText:
		return strings.Compare(a, b)
	}
	return 0
}

func sortVersionsAscending(versions []domain.DocumentVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		return compareVersionValues(versions[i].Version, versions[j].Version) < 0
	})
}

// latestVersion returns the maximum version in the sorted order, or nil.
func latestVersion(versions []domain.DocumentVersion) *domain.DocumentVersion {
	if len(versions) == 0 {
		return nil
	}
	latest := &versions[0]
	for i := 1; i < len(versions); i++ {
		if compareVersionValues(versions[i].Version, latest.Version) >= 0 {
			latest = &versions[i]
		}
	}
	return latest
}

// nextVersionValue numbers a new version: numeric increment of the highest
// existing version, starting at "1" when there is none (or the highest does
// not parse).
func nextVersionValue(versions []domain.DocumentVersion) string {
	last := latestVersion(versions)
	if last == nil {
		return "1"
	}
	if number, err := strconv.ParseFloat(strings.TrimSpace(last.Version), 64); err == nil {
		return strconv.Itoa(int(number) + 1)
	}
	return "1"
}
