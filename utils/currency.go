package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatVND renders a VND amount with dot-grouped digits and the đồng sign.
// VND has zero decimal places, so the digits of the formatted string always
// re-parse to the original integer.
func FormatVND(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}

	formatted := sb.String() + " ₫"
	if negative {
		return "-" + formatted
	}
	return formatted
}

// ParseVND recovers the integer amount from a formatted VND string by
// collecting its digits.
func ParseVND(s string) (int64, error) {
	var sb strings.Builder
	negative := strings.HasPrefix(strings.TrimSpace(s), "-")
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, fmt.Errorf("no digits in amount %q", s)
	}
	amount, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}

// PaymentStatusLabel maps a payment status to its display string.
func PaymentStatusLabel(status string) string {
	switch status {
	case "pending":
		return "Chờ thanh toán"
	case "paid":
		return "Đã thanh toán"
	case "failed":
		return "Thanh toán thất bại"
	case "cancelled":
		return "Đã hủy"
	case "expired":
		return "Hết hạn"
	case "refunded":
		return "Đã hoàn tiền"
	}
	return status
}
