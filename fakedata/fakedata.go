// Package fakedata provides a deterministic offline content provider for
// development and testing. It produces plausible market-commentary text
// without renting any compute, so the whole control loop can run against a
// sandbox account with no inference budget.
package fakedata

import (
	"context"
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/hyperfeather/magpie/agent"
)

// Source generates canned content from a seeded faker. The same seed always
// yields the same sequence of outputs.
type Source struct {
	mu    sync.Mutex // gofakeit fakers are not safe for concurrent use
	faker *gofakeit.Faker
	name  string
}

var _ agent.ContentProvider = (*Source)(nil)

func NewSource(characterName string, seed int64) *Source {
	if characterName == "" {
		characterName = "Magpie"
	}
	return &Source{
		faker: gofakeit.New(seed),
		name:  characterName,
	}
}

var coins = []string{"BTC", "ETH", "SOL", "ATOM", "DOT"}

func (s *Source) GeneratePost(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.faker
	coin := f.RandomString(coins)
	switch f.Number(0, 3) {
	case 0:
		price := f.Number(40, 110)
		return fmt.Sprintf("%s just reclaimed $%dK as institutional inflows pick back up. Watch for resistance near $%dK. #%s #CryptoMarkets", coin, price, price+8, coin), nil
	case 1:
		return fmt.Sprintf("Layer-2 networks processed %dM+ transactions today, cutting mainnet fees by %d%%. The scaling race is heating up. #L2 #Scaling", f.Number(2, 9), f.Number(60, 95)), nil
	case 2:
		return fmt.Sprintf("Staking yields on %s are sitting at %d.%d%% APR after the latest upgrade. Validator count keeps climbing. #Staking #DeFi", coin, f.Number(3, 9), f.Number(0, 9)), nil
	default:
		return fmt.Sprintf("DeFi TVL is up %d%% YTD as lending yields outpace traditional finance. Keep an eye on protocol revenue, not just emissions. #DeFi #Yield", f.Number(15, 80)), nil
	}
}

func (s *Source) GenerateReply(ctx context.Context, m agent.Mention) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.faker
	switch f.Number(0, 2) {
	case 0:
		return fmt.Sprintf("Good observation! The %d-day moving average has been reliable support this cycle, and it currently sits around $%dK.", f.RandomInt([]int{50, 100, 200}), f.Number(45, 80)), nil
	case 1:
		return fmt.Sprintf("Correlation with traditional markets has dropped to 0.%d this quarter, which suggests the asset class keeps maturing.", f.Number(20, 55)), nil
	default:
		return fmt.Sprintf("Worth noting the developer ecosystem here is roughly %dx larger than the closest competitor. Network effects matter.", f.Number(2, 6)), nil
	}
}

func (s *Source) GenerateDirectReply(ctx context.Context, ev agent.DMEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.faker
	low := f.Number(55, 75)
	return fmt.Sprintf("Thanks for your message! Current market structure points to an accumulation phase, with support near $%dK and resistance around $%dK. Dollar-cost averaging has historically outperformed lump-sum entries in conditions like these. Want me to go deeper on any particular asset? - %s", low, low+10, s.name), nil
}
