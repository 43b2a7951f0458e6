// Package cli handles cmd line input for trying vanity searches by hand
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/vanityserve/internal/utils"
	"github.com/bastiangx/vanityserve/pkg/phone"
	"github.com/bastiangx/vanityserve/pkg/vanity"
	"github.com/charmbracelet/log"
)

// InputHandler reads phone numbers from stdin and prints their vanity
// numbers with scores.
// Input starting with '+' or typed with separators is parsed as a phone
// number in the handler's region. Bare digit strings are searched as they
// are, which is handy for short test numbers.
type InputHandler struct {
	engine       *vanity.Engine
	region       string
	limit        int
	maxLength    int
	dictWords    int
	requestCount int
	out          *log.Logger
}

// NewInputHandler creates a CLI handler printing up to limit results.
// Numbers longer than maxLength digits are refused, zero means no bound.
func NewInputHandler(engine *vanity.Engine, region string, limit, maxLength, dictWords int) *InputHandler {
	return &InputHandler{
		engine:    engine,
		region:    region,
		limit:     limit,
		maxLength: maxLength,
		dictWords: dictWords,
		out:       log.Default(),
	}
}

// Start runs the prompt on stdin until it is closed.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run prompts for numbers read from r until it ends.
func (h *InputHandler) Run(r io.Reader) error {
	h.out.Print("VanityServe CLI [BETA]")
	h.out.Printf("dictionary: %s words, region %s", utils.FormatWithCommas(h.dictWords), h.region)
	h.out.Print("type a phone number and press Enter (Ctrl+C to exit):")

	reader := bufio.NewReader(r)
	for {
		h.out.Print("> ")
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			h.handleInput(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (h *InputHandler) handleInput(input string) {
	h.requestCount++

	national, countryCode, err := h.resolve(input)
	if err != nil {
		h.out.Errorf("%v", err)
		return
	}
	if h.maxLength > 0 && len(national) > h.maxLength {
		h.out.Errorf("Number too long: %d digits, max %d", len(national), h.maxLength)
		return
	}

	start := time.Now()
	candidates, err := h.engine.Search(national, h.limit)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for '%s'", elapsed, national)
	if err != nil {
		h.out.Errorf("%v", err)
		return
	}
	if len(candidates) == 0 {
		h.out.Warnf("No vanity numbers found for '%s'", input)
		return
	}

	h.out.Printf("Found %d vanity numbers for '%s' in %v:", len(candidates), input, elapsed.Round(time.Microsecond))
	for i, line := range renderCandidates(countryCode, candidates) {
		h.out.Printf("%2d. %s", i+1, line)
	}
}

// resolve returns the digits to search and the country code to show them
// with. Bare digits skip phone parsing and get no country code.
func (h *InputHandler) resolve(input string) (string, int, error) {
	stripped := utils.StripDialChars(input)
	if stripped == input && !strings.HasPrefix(input, "+") {
		return input, 0, nil
	}
	num, err := phone.Parse(input, h.region)
	if err != nil {
		return "", 0, err
	}
	return num.National, num.CountryCode, nil
}
