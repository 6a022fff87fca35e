package keys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcncore/internal/keys"
	"tcncore/internal/testutil"
)

func fixedRak(t *testing.T) keys.ReportAuthorizationKey {
	t.Helper()
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	rak, err := keys.ReportAuthorizationKeyFromBytes(seed)
	require.NoError(t, err)
	return rak
}

func TestRatchetIsDeterministic(t *testing.T) {
	rak := fixedRak(t)

	a := rak.InitialTemporaryContactKey()
	b := rak.InitialTemporaryContactKey()
	assert.Equal(t, uint16(1), a.Index)
	assert.Equal(t, a.TemporaryContactNumber(), b.TemporaryContactNumber())

	nextA, ok := a.Ratchet()
	require.True(t, ok)
	nextB, ok := b.Ratchet()
	require.True(t, ok)
	assert.Equal(t, uint16(2), nextA.Index)
	assert.Equal(t, nextA.TemporaryContactNumber(), nextB.TemporaryContactNumber())

	// Every period derives a distinct number.
	assert.NotEqual(t, a.TemporaryContactNumber(), nextA.TemporaryContactNumber())
}

func TestDifferentKeysDeriveDifferentTcns(t *testing.T) {
	rakA, err := keys.NewReportAuthorizationKey()
	require.NoError(t, err)
	rakB, err := keys.NewReportAuthorizationKey()
	require.NoError(t, err)

	tcnA := rakA.InitialTemporaryContactKey().TemporaryContactNumber()
	tcnB := rakB.InitialTemporaryContactKey().TemporaryContactNumber()
	assert.NotEqual(t, tcnA, tcnB)
}

func TestTemporaryContactKeyRoundTrip(t *testing.T) {
	rak := fixedRak(t)
	tck := rak.InitialTemporaryContactKey()

	blob := tck.MarshalBinary()
	require.Len(t, blob, 66)

	restored, err := keys.TemporaryContactKeyFromBytes(blob)
	require.NoError(t, err)
	assert.Equal(t, tck.Index, restored.Index)
	assert.Equal(t, tck.TemporaryContactNumber(), restored.TemporaryContactNumber())

	_, err = keys.TemporaryContactKeyFromBytes(blob[:40])
	assert.Error(t, err)
}

func TestAuthorizationKeyFromBytesRejectsBadLength(t *testing.T) {
	_, err := keys.ReportAuthorizationKeyFromBytes(make([]byte, 31))
	assert.Error(t, err)
}

func TestCreateReportRoundTrip(t *testing.T) {
	rak := fixedRak(t)
	memo := []byte{0x01, 0x02, 0x03}

	signed, err := rak.CreateReport(memo, 3, 7)
	require.NoError(t, err)

	parsed, err := keys.ParseSignedReport(signed.Bytes())
	require.NoError(t, err)

	report, err := parsed.Verify()
	require.NoError(t, err)
	assert.Equal(t, uint16(3), report.Start)
	assert.Equal(t, uint16(7), report.End)
	assert.Equal(t, memo, report.Memo)
	assert.Equal(t, signed.Signature(), report.Signature())
}

func TestReportCoversExactWindow(t *testing.T) {
	rak := fixedRak(t)

	// Walk the chain directly to know which TCNs indices 3..7 emit.
	var expected [][16]byte
	tck := rak.InitialTemporaryContactKey()
	for tck.Index <= 7 {
		if tck.Index >= 3 {
			expected = append(expected, tck.TemporaryContactNumber())
		}
		next, ok := tck.Ratchet()
		require.True(t, ok)
		tck = *next
	}

	signed, err := rak.CreateReport(nil, 3, 7)
	require.NoError(t, err)
	report, err := signed.Verify()
	require.NoError(t, err)

	tcns := report.TemporaryContactNumbers()
	require.Len(t, tcns, 5)
	for i, tcn := range tcns {
		assert.Equal(t, expected[i], [16]byte(tcn))
	}
}

func TestVerifyRejectsTamperedReport(t *testing.T) {
	rak := fixedRak(t)
	signed, err := rak.CreateReport([]byte{0xaa}, 1, 4)
	require.NoError(t, err)

	raw := signed.Bytes()
	raw[69] ^= 0xff // flip a memo byte

	tampered, err := keys.ParseSignedReport(raw)
	require.NoError(t, err)
	_, err = tampered.Verify()
	assert.ErrorIs(t, err, keys.ErrInvalidSignature)
}

func TestParseSignedReportRejectsBadLengths(t *testing.T) {
	_, err := keys.ParseSignedReport(make([]byte, 10))
	assert.Error(t, err)

	// Header claims a 5-byte memo but none follows.
	raw := make([]byte, 69+64)
	raw[68] = 5
	_, err = keys.ParseSignedReport(raw)
	assert.Error(t, err)
}

func TestCreateReportRejectsInvalidRange(t *testing.T) {
	rak := fixedRak(t)

	_, err := rak.CreateReport(nil, 0, 4)
	assert.Error(t, err)

	_, err = rak.CreateReport(nil, 5, 4)
	assert.Error(t, err)
}

func TestTcnKeysCreatesAndPersistsKeys(t *testing.T) {
	preferences := &testutil.MockPreferences{}
	logger := &testutil.MockLogger{}

	k, err := keys.NewTcnKeys(preferences, logger)
	require.NoError(t, err)
	require.Len(t, preferences.AuthorizationKey(), 32)
	require.Len(t, preferences.TemporaryContactKey(), 66)
	rakBefore := preferences.AuthorizationKey()

	first, err := k.GenerateTcn()
	require.NoError(t, err)

	// A fresh instance over the same preferences resumes the chain with
	// the same authorization key.
	resumed, err := keys.NewTcnKeys(preferences, logger)
	require.NoError(t, err)
	second, err := resumed.GenerateTcn()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, rakBefore, preferences.AuthorizationKey())
}

func TestTcnKeysGenerateTcnAdvancesChain(t *testing.T) {
	preferences := &testutil.MockPreferences{}
	k, err := keys.NewTcnKeys(preferences, &testutil.MockLogger{})
	require.NoError(t, err)

	seen := make(map[[16]byte]bool)
	for i := 0; i < 10; i++ {
		tcn, err := k.GenerateTcn()
		require.NoError(t, err)
		assert.False(t, seen[[16]byte(tcn)])
		seen[[16]byte(tcn)] = true
	}
}

func TestTcnKeysReportMatchesBroadcastTcns(t *testing.T) {
	preferences := &testutil.MockPreferences{}
	k, err := keys.NewTcnKeys(preferences, &testutil.MockLogger{})
	require.NoError(t, err)

	var broadcast [][16]byte
	for i := 0; i < 5; i++ {
		tcn, err := k.GenerateTcn()
		require.NoError(t, err)
		broadcast = append(broadcast, [16]byte(tcn))
	}

	signed, err := k.CreateReport([]byte{0x01})
	require.NoError(t, err)
	report, err := signed.Verify()
	require.NoError(t, err)

	// The window ends at the current key, one past the last broadcast.
	assert.Equal(t, uint16(1), report.Start)
	assert.Equal(t, uint16(6), report.End)
	tcns := report.TemporaryContactNumbers()
	require.Len(t, tcns, 6)
	for i, tcn := range broadcast {
		assert.Equal(t, tcn, [16]byte(tcns[i]))
	}
}
