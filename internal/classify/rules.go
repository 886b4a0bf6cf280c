package classify

import (
    "errors"
    "regexp"
    "strings"
    "sync"

    "github.com/hyperifyio/edulang/internal/extract"
)

// Verdict is the outcome a rule assigns when it matches.
type Verdict int

const (
    Reject Verdict = iota
    Accept
)

func (v Verdict) String() string {
    if v == Accept {
        return "accept"
    }
    return "reject"
}

// Rule is one (predicate -> category, verdict) row of the rule table.
type Rule struct {
    Name     string
    Category Category
    Verdict  Verdict
    Reason   string
    match    func(*subject) bool
}

// Options customizes the rule table.
type Options struct {
    // CustomPrefixes are key prefixes of world-specific educational strings,
    // e.g. "myworld.lesson". Matching is case-insensitive.
    CustomPrefixes []string
    // TechnicalPrefixes are extra key prefixes to always exclude.
    TechnicalPrefixes []string
}

// Config is the compiled, immutable rule table. Build it once with NewConfig
// and share it freely between analyses.
type Config struct {
    rules []Rule
}

// Rules returns a copy of the ordered rule table.
func (c *Config) Rules() []Rule {
    out := make([]Rule, len(c.rules))
    copy(out, c.rules)
    return out
}

// segmentPattern builds a case-insensitive matcher for any of words appearing
// as a whole key segment (optionally pluralized or numbered).
func segmentPattern(words ...string) *regexp.Regexp {
    return regexp.MustCompile(`(?:^|[.:_/-])(?:` + strings.Join(words, "|") + `)s?\d*(?:[.:_/-]|$)`)
}

// namespacePattern matches keys whose first segment is one of words.
func namespacePattern(words ...string) *regexp.Regexp {
    return regexp.MustCompile(`^(?:` + strings.Join(words, "|") + `)(?:[.:]|$)`)
}

var (
    identifierNS = namespacePattern("item", "tile", "block", "entity", "biome", "enchantment", "potion",
        "effect", "attribute", "itemgroup", "container", "structure", "color", "record", "spawn_egg",
        "fluid", "painting", "dimension", "recipe")
    systemNS = namespacePattern("commands?", "function", "disconnect", "multiplayer", "network", "server",
        "connect", "death", "chat", "debug", "error", "exception", "crash", "realms", "permissions?",
        "gamemode", "gamerule", "xbox", "platform")
    systemSeg      = segmentPattern("debug", "error", "exception", "crash", "command")
    achievementNS  = namespacePattern("achievements?", "advancements?", "stats?", "progress", "trophy")
    uiNS           = namespacePattern("options", "menu", "gui", "key", "controller", "hud", "screen", "settings",
        "accessibility", "selectworld", "createworldscreen", "tooltip", "button", "ui", "resourcepack",
        "store", "skins?", "inventory", "splash", "pause", "realmsplus", "catalog")
    uiSeg          = segmentPattern("button", "menu", "ui", "gui", "tooltip", "hud")
    dialogueSeg    = segmentPattern("npc", "dialogue", "dialog", "conversation", "greeting", "speech")
    instructionSeg = segmentPattern("tutorial", "lesson", "instruction", "quiz", "hint", "objective",
        "guide", "question", "answer", "task", "activity")
    narrativeSeg = segmentPattern("story", "stories", "book", "sign", "lore", "journal", "chapter",
        "narrative", "page", "intro")
)

func keyMatches(res ...*regexp.Regexp) func(*subject) bool {
    return func(s *subject) bool {
        for _, re := range res {
            if re.MatchString(s.key) {
                return true
            }
        }
        return false
    }
}

func keyHasPrefix(prefixes []string) func(*subject) bool {
    return func(s *subject) bool {
        for _, p := range prefixes {
            if strings.HasPrefix(s.key, p) {
                return true
            }
        }
        return false
    }
}

func normalizePrefixes(in []string) []string {
    out := make([]string, 0, len(in))
    for _, p := range in {
        if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
            out = append(out, p)
        }
    }
    return out
}

// NewConfig compiles the rule table. Order is precedence.
func NewConfig(opt Options) *Config {
    custom := normalizePrefixes(opt.CustomPrefixes)
    technical := normalizePrefixes(opt.TechnicalPrefixes)

    rules := []Rule{
        {Name: "identifier-key", Category: CategoryIdentifier, Verdict: Reject, Reason: ReasonTechnicalKey, match: keyMatches(identifierNS)},
        {Name: "system-key", Category: CategorySystemMessage, Verdict: Reject, Reason: ReasonTechnicalKey, match: keyMatches(systemNS, systemSeg)},
        {Name: "achievement-key", Category: CategoryAchievement, Verdict: Reject, Reason: ReasonTechnicalKey, match: keyMatches(achievementNS)},
        {Name: "ui-key", Category: CategoryUILabel, Verdict: Reject, Reason: ReasonTechnicalKey, match: keyMatches(uiNS, uiSeg)},
    }
    if len(technical) > 0 {
        rules = append(rules, Rule{Name: "technical-prefix", Category: CategoryTechnical, Verdict: Reject, Reason: ReasonTechnicalKey, match: keyHasPrefix(technical)})
    }
    rules = append(rules,
        Rule{Name: "malformed-value", Category: CategoryMalformed, Verdict: Reject, Reason: ReasonMalformed, match: func(s *subject) bool {
            return errors.Is(s.cleanErr, extract.ErrMalformed)
        }},
        Rule{Name: "empty-value", Category: CategoryFragment, Verdict: Reject, Reason: ReasonEmpty, match: func(s *subject) bool {
            return s.stripped == ""
        }},
        Rule{Name: "short-value", Category: CategoryFragment, Verdict: Reject, Reason: ReasonTooShort, match: func(s *subject) bool {
            return errors.Is(s.cleanErr, extract.ErrFragment)
        }},
        Rule{Name: "dialogue-key", Category: CategoryDialogue, Verdict: Accept, match: keyMatches(dialogueSeg)},
        Rule{Name: "instructional-key", Category: CategoryInstructional, Verdict: Accept, match: keyMatches(instructionSeg)},
        Rule{Name: "narrative-key", Category: CategoryNarrative, Verdict: Accept, match: keyMatches(narrativeSeg)},
    )
    if len(custom) > 0 {
        rules = append(rules, Rule{Name: "custom-prefix", Category: CategoryCustom, Verdict: Accept, match: keyHasPrefix(custom)})
    }
    rules = append(rules, Rule{Name: "prose-value", Category: CategoryProse, Verdict: Accept, match: func(s *subject) bool {
        return IsProse(s.cleaned)
    }})
    return &Config{rules: rules}
}

var defaultConfig = sync.OnceValue(func() *Config { return NewConfig(Options{}) })

// DefaultConfig returns the shared rule table with no custom prefixes.
func DefaultConfig() *Config {
    return defaultConfig()
}
