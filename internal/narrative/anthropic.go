package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/paradigma/diagnostico/internal/domain"
	"github.com/paradigma/diagnostico/internal/scoring"
)

const systemPrompt = `Você é um analista de criptomoedas e gestor de portfólio profissional da Paradigma Education, uma das principais empresas de educação e pesquisa em criptoativos do Brasil.

Sua função é analisar portfólios de criptomoedas e fornecer diagnósticos personalizados baseados no perfil do investidor.

## REGRAS E PRINCÍPIOS QUE VOCÊ DEVE SEGUIR:

### Classificação de Ativos:
- **Major Tier 1**: BTC (Bitcoin) - tratamento especial, é o ativo mais seguro e estabelecido
- **Major Tier 2**: ETH (Ethereum), SOL (Solana) - muito seguros, alta liquidez
- **Major Stablecoins**: USDC, USDT, DAI, PYUSD - baixíssimo risco, servem como colchão de liquidez
- **Outras Stablecoins**: USDE, FRAX, LUSD, MIM, USDD - possuem riscos estruturais (depeg)
- **Memecoins**: DOGE, SHIB, PEPE, WIF, BONK, FLOKI, etc. - altíssimo risco especulativo

### Faixas de Stablecoins por Perfil:
- **Conservador**: 10-40% em major stablecoins
- **Moderado**: 10-20% em major stablecoins
- **Arrojado**: 0-20% em major stablecoins

### Limites de Memecoins:
- **Conservador**: 0% (não deve ter memecoins)
- **Moderado**: máximo 5%
- **Arrojado**: máximo 15%

### Concentração:
- ≥40% em um único ativo (exceto BTC) = crítico
- ≥20% em um único ativo (exceto BTC/ETH/SOL) = alerta
- >60% em qualquer ativo único = crítico (exceto BTC para conservador de longo prazo)

### Diversificação:
- 4-8 ativos = ideal
- <3 ativos = pouco diversificado
- >15 ativos = over-diversification

### Majors (BTC+ETH+SOL):
- <40% em majors = baixa base defensiva

### Por Objetivo:
- **Preservar Capital**: deve ter alta exposição em majors (>50%), zero memecoins
- **Renda Passiva**: deve ter ativos com potencial de yield (ETH, SOL, ATOM, etc.)
- **Multiplicar**: pode ter mais risco, mas deve ter base sólida

## FORMATO DA RESPOSTA:

Você DEVE responder em formato JSON válido com a seguinte estrutura:
{
  "summary": "Resumo executivo de 2-3 frases sobre o portfólio",
  "riskAssessment": "Avaliação detalhada do nível de risco do portfólio (2-3 parágrafos)",
  "strengths": ["Lista de pontos fortes do portfólio"],
  "weaknesses": ["Lista de pontos fracos ou riscos identificados"],
  "recommendations": ["Lista de recomendações específicas e acionáveis"],
  "overallScore": número de 0-100 representando aderência ao perfil,
  "detailedAnalysis": "Análise completa e detalhada do portfólio (3-5 parágrafos)"
}

Seja direto, profissional, mas também acessível. Use linguagem clara e evite jargões excessivos.
Sempre contextualize suas análises com o perfil do investidor.
Não seja excessivamente alarmista, mas seja honesto sobre riscos.
Para portfólios focados em BTC, seja mais flexível - é uma estratégia válida para muitos perfis.`

var (
	horizonLabels = map[domain.Horizon]string{
		domain.HorizonShort:  "Curto prazo (até 1 ano)",
		domain.HorizonMedium: "Médio prazo (1-3 anos)",
		domain.HorizonLong:   "Longo prazo (mais de 3 anos)",
	}

	riskToleranceLabels = map[domain.RiskTolerance]string{
		domain.RiskLow:    "Conservador",
		domain.RiskMedium: "Moderado",
		domain.RiskHigh:   "Arrojado",
	}

	objectiveLabels = map[domain.Objective]string{
		domain.ObjectivePreserve:      "Preservar Capital",
		domain.ObjectivePassiveIncome: "Renda Passiva",
		domain.ObjectiveMultiply:      "Multiplicar Capital",
	}
)

// AnthropicConfig configures the Claude-backed narrative provider.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// AnthropicProvider generates narrative analyses through the Anthropic API.
type AnthropicProvider struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewAnthropicProvider creates a Claude-backed provider. Returns nil when no
// API key is configured so callers can pass it straight to NewScorer.
func NewAnthropicProvider(cfg AnthropicConfig, log zerolog.Logger) *AnthropicProvider {
	if cfg.APIKey == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &AnthropicProvider{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: timeout,
		log:     log.With().Str("component", "anthropic_provider").Logger(),
	}
}

// Analyze sends the portfolio to Claude and parses the structured diagnosis.
func (p *AnthropicProvider) Analyze(ctx context.Context, allocation []domain.AssetAllocation, profile domain.InvestorProfile, metrics scoring.Context) (*domain.AIAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(allocation, profile, metrics))),
		},
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Temperature: anthropic.Float(0.7),
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("anthropic response contained no text content")
	}

	analysis, err := parseAnalysis(text.String())
	if err != nil {
		return nil, err
	}

	p.log.Debug().
		Dur("duration", time.Since(start)).
		Int("score", analysis.OverallScore).
		Msg("Narrative analysis generated")

	return analysis, nil
}

func buildUserPrompt(allocation []domain.AssetAllocation, profile domain.InvestorProfile, metrics scoring.Context) string {
	objectives := make([]string, 0, len(profile.Objectives))
	for _, obj := range profile.Objectives {
		objectives = append(objectives, objectiveLabels[obj])
	}

	var b strings.Builder
	b.WriteString("## PERFIL DO INVESTIDOR:\n")
	fmt.Fprintf(&b, "- Horizonte: %s\n", horizonLabels[profile.Horizon])
	fmt.Fprintf(&b, "- Tolerância ao Risco: %s\n", riskToleranceLabels[profile.RiskTolerance])
	fmt.Fprintf(&b, "- Objetivos: %s\n\n", strings.Join(objectives, ", "))

	b.WriteString("## COMPOSIÇÃO DO PORTFÓLIO:\n")
	for _, a := range allocation {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", a.Token, a.Percentage)
	}

	b.WriteString("\n## MÉTRICAS CALCULADAS:\n")
	fmt.Fprintf(&b, "- Número de ativos: %d\n", metrics.NumAssets)
	fmt.Fprintf(&b, "- Exposição em Majors (BTC+ETH+SOL): %.1f%%\n", metrics.MajorPercentage)
	fmt.Fprintf(&b, "- Exposição em Major Stablecoins: %.1f%%\n", metrics.StablecoinPercentage)
	fmt.Fprintf(&b, "- Exposição em Memecoins: %.1f%%\n\n", metrics.MemecoinPercentage)

	b.WriteString("## DISTRIBUIÇÃO POR SETOR:\n")
	for _, sector := range sortedSectors(metrics.SectorBreakdown) {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", sector.name, sector.pct)
	}

	b.WriteString("\nPor favor, analise este portfólio e forneça um diagnóstico completo considerando o perfil do investidor.\n")
	return b.String()
}

// parseAnalysis decodes the model output, tolerating markdown code fences
// around the JSON body.
func parseAnalysis(raw string) (*domain.AIAnalysis, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("anthropic response is not JSON: %q", truncate(raw, 120))
	}

	var analysis domain.AIAnalysis
	if err := json.Unmarshal([]byte(raw[start:end+1]), &analysis); err != nil {
		return nil, fmt.Errorf("decode anthropic response: %w", err)
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("anthropic response missing summary")
	}
	return &analysis, nil
}

type sectorShare struct {
	name string
	pct  float64
}

// sortedSectors returns the breakdown as a slice ordered by percentage,
// largest first, so prompts and summaries are deterministic.
func sortedSectors(breakdown map[string]float64) []sectorShare {
	shares := make([]sectorShare, 0, len(breakdown))
	for name, pct := range breakdown {
		shares = append(shares, sectorShare{name, pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].pct != shares[j].pct {
			return shares[i].pct > shares[j].pct
		}
		return shares[i].name < shares[j].name
	})
	return shares
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
