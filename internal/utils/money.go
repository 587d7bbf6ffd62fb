package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// GeneratePaymentReference returns PAY-YYYYMMDD-HHMMSS-mmm-RRRR.
func GeneratePaymentReference() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	// 4-digit cryptographic random
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("PAY-%s-%03d-%04d", datePart, millis, n.Int64())
}

// FormatINR renders an amount with the rupee sign and Indian digit grouping,
// e.g. 1234567 -> "₹12,34,567". Paise are shown only when non-zero.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	paise := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(paise/100, 10)

	var b strings.Builder
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		for i, r := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(r)
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(whole)
	}

	if frac := paise % 100; frac != 0 {
		fmt.Fprintf(&b, ".%02d", frac)
	}
	return sign + "₹" + b.String()
}
