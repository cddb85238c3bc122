package gamification

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

var (
	parenthesesRe = regexp.MustCompile(`\([^)]*\)`)
	nonLetterRe   = regexp.MustCompile(`[^a-zA-ZÀ-ÿ\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

func initials(name string) string {
	cleaned := parenthesesRe.ReplaceAllString(name, "")
	cleaned = nonLetterRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	parts := whitespaceRe.Split(cleaned, -1)
	filtered := parts[:0]
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}

	switch len(filtered) {
	case 0:
		return "??"
	case 1:
		r := []rune(filtered[0])
		if len(r) > 2 {
			r = r[:2]
		}
		return strings.ToUpper(string(r))
	default:
		first := []rune(filtered[0])
		last := []rune(filtered[len(filtered)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}

// AvatarDataURI renders an initials avatar as an inline SVG data URI, so the
// UI needs no image hosting for celebrity portraits.
func AvatarDataURI(name string) string {
	const bg, ring = "#1a1b4b", "#3ecf8e"

	svg := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="256" height="256" viewBox="0 0 256 256">
  <defs>
    <linearGradient id="g" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0%%" stop-color="%[2]s" stop-opacity="0.35"/>
      <stop offset="100%%" stop-color="%[2]s" stop-opacity="0.05"/>
    </linearGradient>
  </defs>
  <rect width="256" height="256" rx="128" fill="%[1]s"/>
  <rect x="14" y="14" width="228" height="228" rx="114" fill="url(#g)" stroke="%[2]s" stroke-opacity="0.35" stroke-width="8"/>
  <text x="128" y="142" text-anchor="middle" font-family="ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto" font-size="88" font-weight="800" fill="%[2]s">%[3]s</text>
</svg>`, bg, ring, initials(name))

	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(svg)
}

func newCelebrity(name, description, portfolio string) domain.CelebrityMatch {
	return domain.CelebrityMatch{
		Name:        name,
		Image:       AvatarDataURI(name),
		Description: description,
		Portfolio:   portfolio,
	}
}

// CelebrityMatchFor finds the crypto personality whose public portfolio
// style best matches the allocation. Ties keep the earlier entry.
func CelebrityMatchFor(allocation []domain.AssetAllocation) domain.CelebrityMatch {
	btc := scoring.Percentage(allocation, "BTC")
	eth := scoring.Percentage(allocation, "ETH")
	sol := scoring.Percentage(allocation, "SOL")
	bnb := scoring.Percentage(allocation, "BNB")
	defi := scoring.SumWhere(allocation, domain.IsDeFiToken)
	altcoins := altcoinPercentage(allocation)
	hasMemes := hasMemecoins(allocation)
	numAssets := len(allocation)

	saylor := newCelebrity("Michael Saylor",
		"CEO da MicroStrategy. Bitcoin maximalist declarado.",
		"100% Bitcoin, sem arrependimentos.")
	switch {
	case btc >= 80:
		saylor.Match = 95
	case btc >= 60:
		saylor.Match = 75
	case btc >= 40:
		saylor.Match = 50
	default:
		saylor.Match = 20
	}

	vitalik := newCelebrity("Vitalik Buterin",
		"Criador do Ethereum. Visionário e inovador.",
		"ETH + projetos DeFi e infraestrutura.")
	switch {
	case eth >= 50:
		vitalik.Match = 90
	case eth >= 30:
		vitalik.Match = 70
	case eth >= 15:
		vitalik.Match = 45
	default:
		vitalik.Match = 15
	}

	cz := newCelebrity("CZ (Changpeng Zhao)",
		"Fundador da Binance. Diversificação estratégica.",
		"BNB + portfólio diversificado de qualidade.")
	switch {
	case bnb >= 20 || (numAssets >= 5 && !hasMemes):
		cz.Match = 80
	case numAssets >= 4:
		cz.Match = 55
	default:
		cz.Match = 25
	}

	hayes := newCelebrity("Arthur Hayes",
		"Ex-CEO da BitMEX. Trader agressivo e ousado.",
		"BTC + altcoins com alavancagem mental.")
	switch {
	case altcoins >= 50 && numAssets >= 4:
		hayes.Match = 90
	case altcoins >= 30:
		hayes.Match = 65
	case btc >= 50 && eth >= 20:
		hayes.Match = 50
	default:
		hayes.Match = 25
	}

	balaji := newCelebrity("Balaji Srinivasan",
		"Ex-CTO da Coinbase. Visão macro e tech-heavy.",
		"Mix equilibrado de BTC, ETH e L1s promissoras.")
	switch {
	case btc >= 30 && eth >= 20 && sol >= 10:
		balaji.Match = 90
	case btc >= 25 && eth >= 15 && numAssets >= 4:
		balaji.Match = 70
	case btc >= 20 && eth >= 10:
		balaji.Match = 50
	default:
		balaji.Match = 25
	}

	cronje := newCelebrity("Andre Cronje",
		"Criador do Yearn Finance. DeFi degen original.",
		"Heavy DeFi: YFI, CRV, AAVE e experimentais.")
	switch {
	case defi >= 30:
		cronje.Match = 95
	case defi >= 15:
		cronje.Match = 70
	case eth >= 40:
		cronje.Match = 50
	default:
		cronje.Match = 15
	}

	ulrich := newCelebrity("Fernando Ulrich",
		"Economista e bitcoiner brasileiro. Educador influente.",
		"Bitcoin first, com pitada de ETH.")
	switch {
	case btc >= 70:
		ulrich.Match = 90
	case btc >= 50 && eth <= 20:
		ulrich.Match = 75
	case btc >= 40:
		ulrich.Match = 55
	default:
		ulrich.Match = 20
	}

	guiriba := newCelebrity("Guiriba",
		"Trader brasileiro lendário. Performance e análise técnica.",
		"BTC + SOL + altcoins de momentum.")
	switch {
	case btc >= 30 && sol >= 20:
		guiriba.Match = 90
	case sol >= 25:
		guiriba.Match = 75
	case btc >= 40 && altcoins >= 20:
		guiriba.Match = 60
	default:
		guiriba.Match = 25
	}

	chico := newCelebrity("Chico",
		"Influencer crypto brasileiro. Diversificado e estratégico.",
		"Mix de majors + gems de médio cap.")
	switch {
	case numAssets >= 5 && btc >= 20 && eth >= 15 && altcoins >= 20:
		chico.Match = 90
	case numAssets >= 4 && btc >= 15:
		chico.Match = 65
	case numAssets >= 3:
		chico.Match = 40
	default:
		chico.Match = 20
	}

	candidates := []domain.CelebrityMatch{saylor, vitalik, cz, hayes, balaji, cronje, ulrich, guiriba, chico}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Match > best.Match {
			best = c
		}
	}
	return best
}
