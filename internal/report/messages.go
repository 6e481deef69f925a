package report

import (
	"fmt"
	"strings"

	"github.com/chutelab/chute/internal/simulation"
)

// Lang selects the message catalog used for display strings.
type Lang string

const (
	LangEnglish    Lang = "en"
	LangPortuguese Lang = "pt"
)

// ParseLang resolves a language flag value. Region suffixes are ignored.
func ParseLang(s string) (Lang, error) {
	base := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	switch Lang(base) {
	case "", LangEnglish:
		return LangEnglish, nil
	case LangPortuguese:
		return LangPortuguese, nil
	default:
		return "", fmt.Errorf("unsupported language %q: must be en or pt", s)
	}
}

// Messages holds the display strings of one language.
type Messages struct {
	Title        string
	Intro        string
	NoGuessLine  string // %s percent
	GuessLine    string // %s label, %s percent
	Recommend    string // %s label
	DontGuess    string
	NoGuessName  string
	GuessName    string // %s label
	Distribution string
	Statistics   string
	Notes        []string

	// Run header of the text report.
	RunLabel     string
	SeedLabel    string
	SeedLine     string // %d seed, %s pairing name
	ExamLabel    string
	ExamLine     string // %d questions, %d marked, %g cutoff
	ScoringLabel string
	ScoringLine  string // %g accuracy, %g correction factor
	ElapsedLabel string

	// Statistics table columns: pass, expected, mean, SD, median, IQR.
	Columns [6]string

	Independent  string
	Shared       string
	CutoffLegend string // %s cutoff

	// Footnote describes a run: seed, pairing name, best label, expected score.
	Footnote string
}

var catalogs = map[Lang]Messages{
	LangEnglish: {
		Title:        "Should You Guess on the Exam?",
		Intro:        "Runs %d simulations per strategy (guessing or not) to find the best one.",
		NoGuessLine:  "Probability of passing WITHOUT guessing: %s",
		GuessLine:    "Probability of passing guessing %s of the remaining questions: %s",
		Recommend:    "Guessing %s of the remaining questions is worth it!",
		DontGuess:    "Guessing is not worth it on this exam!",
		NoGuessName:  "No guess",
		GuessName:    "Guess %s",
		Distribution: "Score distribution",
		Statistics:   "Summary statistics",
		Notes: []string{
			"Guessing strategies tend to share the same mean, but the more you guess the larger the variance: you may do very well or very badly. That is why, when guessing is the best option, guessing every remaining question usually wins.",
			"On the other hand, when your performance is already close to the cutoff, not guessing or guessing little tends to be the best strategy.",
		},
		RunLabel:     "Run:",
		SeedLabel:    "Seed:",
		SeedLine:     "%d (%s pairing)",
		ExamLabel:    "Exam:",
		ExamLine:     "%d questions, %d marked, cutoff %g",
		ScoringLabel: "Scoring:",
		ScoringLine:  "accuracy %g, correction factor %g",
		ElapsedLabel: "Elapsed:",
		Columns:      [6]string{"Pass", "Expected", "Mean", "SD", "Median", "IQR"},
		Independent:  "independent",
		Shared:       "shared",
		CutoffLegend: "┊ cutoff %s",
		Footnote:     "seed %d · %s pairing · best guess %s · expected score %.1f",
	},
	LangPortuguese: {
		Title:        "É Apropriado Chutar na Prova?",
		Intro:        "Esse app faz %d simulações para cada estratégia (chute ou não chute) para averiguar qual é a melhor.",
		NoGuessLine:  "Probabilidade de ser aprovado SEM chutar: %s",
		GuessLine:    "Probabilidade de ser aprovado chutando %s das questões remanescentes: %s",
		Recommend:    "É apropriado chutar %s das questões remanescentes!",
		DontGuess:    "Não é apropriado chutar na prova!",
		NoGuessName:  "Sem Chutar",
		GuessName:    "Chutar %s",
		Distribution: "Distribuição das Pontuações",
		Statistics:   "Estatísticas",
		Notes: []string{
			"De modo geral, as estratégias de chute possuem a mesma média, porém a estratégia com o maior número de chutes possui uma variância maior (ou seja, você pode ir muito bem, mas também pode ir muito mal). Por esse motivo, quando o chute é a melhor opção, de modo geral, chutar todas as questões tende a ser a melhor estratégia.",
			"Por outro lado, quando você já tem uma performance muito próxima de atingir a nota de corte, não chutar ou chutar pouco tende a ser a melhor estratégia.",
		},
		RunLabel:     "Execução:",
		SeedLabel:    "Semente:",
		SeedLine:     "%d (pareamento %s)",
		ExamLabel:    "Prova:",
		ExamLine:     "%d questões, %d marcadas, nota de corte %g",
		ScoringLabel: "Pontuação:",
		ScoringLine:  "taxa de acerto %g, fator de correção %g",
		ElapsedLabel: "Duração:",
		Columns:      [6]string{"Aprov.", "Esperada", "Média", "DP", "Mediana", "AIQ"},
		Independent:  "independente",
		Shared:       "compartilhado",
		CutoffLegend: "┊ nota de corte %s",
		Footnote:     "semente %d · pareamento %s · melhor chute %s · pontuação esperada %.1f",
	},
}

// MessagesFor returns the catalog for lang, falling back to English.
func MessagesFor(lang Lang) Messages {
	if m, ok := catalogs[lang]; ok {
		return m
	}
	return catalogs[LangEnglish]
}

// StrategyName returns the display name of a strategy.
func (m Messages) StrategyName(s simulation.Strategy) string {
	if s == simulation.StrategyNone {
		return m.NoGuessName
	}
	return fmt.Sprintf(m.GuessName, s.Label())
}

// PairingName returns the display name of a pairing mode.
func (m Messages) PairingName(p simulation.Pairing) string {
	if p == simulation.PairingShared {
		return m.Shared
	}
	return m.Independent
}

// Recommendation returns the verdict line for an evaluation.
func (m Messages) Recommendation(ev *simulation.Evaluation) string {
	if ev.ShouldGuess() {
		return fmt.Sprintf(m.Recommend, ev.Recommended.Label())
	}
	return m.DontGuess
}

// FormatPercent renders a probability as a percentage with two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
