package principles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katichai/pyqa/internal/principles"
)

func TestDetectResponsibilities(t *testing.T) {
	text := "this class handles database queries and also prints a log message to a file"
	found := principles.DetectResponsibilities(text)
	assert.Contains(t, found, "data_access")
	assert.Contains(t, found, "logging")
	assert.Contains(t, found, "io")
}

func TestDetectResponsibilitiesWholeWordOnly(t *testing.T) {
	// "login" must not match the "log" keyword under whole-word matching.
	found := principles.DetectResponsibilities("user login handler")
	assert.Contains(t, found, "authentication")
	assert.NotContains(t, found, "logging")
}

const srpMixedResponsibilityClass = `class UserManager:
    def save_to_database(self, user):
        query = "INSERT INTO users VALUES (?)"
        return query

    def render_profile_page(self, user):
        return "<html>" + user.name + "</html>"

    def validate_email(self, email):
        assert "@" in email
`

func TestSRPFlagsMixedResponsibilities(t *testing.T) {
	unit := parseUnit(t, srpMixedResponsibilityClass)

	srp := principles.NewSRP(principles.DefaultSRPConfig())
	result := srp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	sub := result.SubRecords[0]
	assert.Equal(t, "UserManager", sub.Name)
	assert.Less(t, sub.Score, 1.0)
	assert.NotEmpty(t, sub.Findings)
}

const srpSingleResponsibilityClass = `class EmailValidator:
    def validate(self, email):
        assert "@" in email
        return True

    def is_valid_format(self, email):
        return self.validate(email)
`

func TestSRPScoresCohesiveSingleResponsibilityClassWell(t *testing.T) {
	unit := parseUnit(t, srpSingleResponsibilityClass)

	srp := principles.NewSRP(principles.DefaultSRPConfig())
	result := srp.AnalyzeFileImpl(unit.Path, unit.Content, unit.Tree)

	require.Len(t, result.SubRecords, 1)
	assert.GreaterOrEqual(t, result.SubRecords[0].Score, 0.5)
}
