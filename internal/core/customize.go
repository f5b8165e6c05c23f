package core

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Table names used by the customization API and the response store.
const (
	OutputTableName = "output"
	ChatTableName   = "chat"
)

// ResponseStore persists customized responses.
type ResponseStore interface {
	SaveResponse(table, keyword, response string) error
}

// ResponseListing is the introspection view of both tables.
type ResponseListing struct {
	Output []string `json:"output"`
	Chat   []string `json:"chat"`
}

// Customizer lets an embedding host add canned responses at runtime. The
// changes apply to the shared tables for the rest of the process lifetime.
type Customizer struct {
	tables Tables
	store  ResponseStore
	logger *zap.Logger
}

// NewCustomizer wires the tables to store; store may be nil.
func NewCustomizer(tables Tables, store ResponseStore, logger *zap.Logger) *Customizer {
	return &Customizer{tables: tables, store: store, logger: logger}
}

func (c *Customizer) AddOutputResponse(keyword, response string) error {
	return c.add(OutputTableName, c.tables.Output, keyword, response)
}

func (c *Customizer) AddChatResponse(keyword, response string) error {
	return c.add(ChatTableName, c.tables.Chat, keyword, response)
}

// Add routes to the table named by OutputTableName or ChatTableName.
func (c *Customizer) Add(table, keyword, response string) error {
	switch table {
	case OutputTableName:
		return c.AddOutputResponse(keyword, response)
	case ChatTableName:
		return c.AddChatResponse(keyword, response)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

func (c *Customizer) ListResponses() ResponseListing {
	return ResponseListing{
		Output: c.tables.Output.Keys(),
		Chat:   c.tables.Chat.Keys(),
	}
}

func (c *Customizer) add(name string, table *ResponseTable, keyword, response string) error {
	keyword = strings.ToLower(keyword)
	if keyword == "" {
		return ErrEmptyKeyword
	}
	// The live table only changes once the store has accepted the entry.
	if c.store != nil {
		if err := c.store.SaveResponse(name, keyword, response); err != nil {
			return fmt.Errorf("failed to save %s response %q: %w", name, keyword, err)
		}
	}
	table.Set(keyword, response)
	c.logger.Info("Added response", zap.String("table", name), zap.String("keyword", keyword))
	return nil
}
