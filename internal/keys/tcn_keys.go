package keys

import (
	"fmt"
	"sync"

	"tcncore/internal/models"
	"tcncore/internal/prefs"
	"tcncore/internal/providers"
)

// reportPeriodCount bounds the TCN index window a report covers:
// 14 days of 15-minute periods.
const reportPeriodCount = 1344

// TcnKeys orchestrates the ratchet against the preferences store: it
// owns the authorization key and the current temporary contact key,
// creating both on first use.
type TcnKeys struct {
	mu     sync.Mutex
	prefs  prefs.Preferences
	logger providers.Logger
	rak    ReportAuthorizationKey
	tck    TemporaryContactKey
}

func NewTcnKeys(preferences prefs.Preferences, logger providers.Logger) (*TcnKeys, error) {
	k := &TcnKeys{prefs: preferences, logger: logger}

	rakBytes := preferences.AuthorizationKey()
	if len(rakBytes) == 0 {
		rak, err := NewReportAuthorizationKey()
		if err != nil {
			return nil, err
		}
		if err := preferences.SetAuthorizationKey(rak[:]); err != nil {
			return nil, fmt.Errorf("persisting authorization key: %w", err)
		}
		k.rak = rak
		logger.Infof(providers.TypeApp, "Generated new report authorization key")
	} else {
		rak, err := ReportAuthorizationKeyFromBytes(rakBytes)
		if err != nil {
			return nil, err
		}
		k.rak = rak
	}

	tckBytes := preferences.TemporaryContactKey()
	if len(tckBytes) == 0 {
		k.tck = k.rak.InitialTemporaryContactKey()
		if err := preferences.SetTemporaryContactKey(k.tck.MarshalBinary()); err != nil {
			return nil, fmt.Errorf("persisting temporary contact key: %w", err)
		}
	} else {
		tck, err := TemporaryContactKeyFromBytes(tckBytes)
		if err != nil {
			return nil, err
		}
		k.tck = tck
	}

	return k, nil
}

// GenerateTcn derives the TCN to broadcast for the current period,
// then ratchets and persists the advanced key. At chain exhaustion the
// key stays where it is and the same TCN keeps being returned.
func (k *TcnKeys) GenerateTcn() (models.TemporaryContactNumber, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	tcn := k.tck.TemporaryContactNumber()
	next, ok := k.tck.Ratchet()
	if !ok {
		k.logger.Warnf(providers.TypeApp, "Temporary contact key chain exhausted at index %d", k.tck.Index)
		return tcn, nil
	}
	if err := k.prefs.SetTemporaryContactKey(next.MarshalBinary()); err != nil {
		return tcn, fmt.Errorf("persisting ratcheted key: %w", err)
	}
	k.tck = *next
	return tcn, nil
}

// CreateReport signs the memo over a bounded trailing window of TCN
// indices ending at the current key.
func (k *TcnKeys) CreateReport(memo []byte) (SignedReport, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	end := k.tck.Index
	start := uint16(1)
	if end > reportPeriodCount {
		start = end - reportPeriodCount
	}
	return k.rak.CreateReport(memo, start, end)
}
