package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/prasanthzodiac/College-connect-sub000/config"
)

// RollNoCodec derives display roll numbers from login emails and back.
// The mapping is a pure naming convention (student007@college.edu ↔
// 21BCS007); nothing is persisted. Emails outside the convention
// derive to the empty string.
type RollNoCodec struct {
	emailDomain string
	rollPrefix  string
}

var (
	studentLocalRe = regexp.MustCompile(`^student(\d+)$`)
	rollSuffixRe   = regexp.MustCompile(`(\d{3})$`)
)

// NewRollNoCodec creates the codec from college configuration.
func NewRollNoCodec(cfg *config.CollegeConfig) *RollNoCodec {
	return &RollNoCodec{
		emailDomain: cfg.EmailDomain,
		rollPrefix:  cfg.RollPrefix,
	}
}

// DeriveRollNumber maps an email like student7@college.edu to 21BCS007.
// Returns "" when the local part does not match the student<N> pattern.
func (c *RollNoCodec) DeriveRollNumber(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		local = email
	}

	m := studentLocalRe.FindStringSubmatch(local)
	if m == nil {
		return ""
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s%03d", c.rollPrefix, n)
}

// RollToEmail maps a roll number like 21BCS007 back to the canonical
// login email. Returns "" when the roll has no trailing 3-digit group.
func (c *RollNoCodec) RollToEmail(roll string) string {
	m := rollSuffixRe.FindStringSubmatch(roll)
	if m == nil {
		return ""
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}

	return fmt.Sprintf("student%d@%s", n, c.emailDomain)
}
