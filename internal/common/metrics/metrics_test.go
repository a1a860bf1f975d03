package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordValidationFailures(t *testing.T) {
	email := testutil.ToFloat64(ValidationFailures.WithLabelValues("email"))
	name := testutil.ToFloat64(ValidationFailures.WithLabelValues("name"))

	RecordValidationFailures([]string{"email", "name", "email"})

	assert.Equal(t, email+2, testutil.ToFloat64(ValidationFailures.WithLabelValues("email")))
	assert.Equal(t, name+1, testutil.ToFloat64(ValidationFailures.WithLabelValues("name")))
}
