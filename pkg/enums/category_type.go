package enums

import "fmt"

// CategoryType mirrors TransactionType for the classification buckets
// transactions are filed under.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

var validCategoryTypes = []CategoryType{
	CategoryTypeIncome,
	CategoryTypeExpense,
}

// String implements fmt.Stringer.
func (c CategoryType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CategoryType.
func (c CategoryType) IsValid() bool {
	for _, candidate := range validCategoryTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategoryType converts raw input into a CategoryType.
func ParseCategoryType(value string) (CategoryType, error) {
	for _, candidate := range validCategoryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category type %q", value)
}
