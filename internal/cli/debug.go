package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show storage path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump stored keys and values as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	return printJSON(ctx, output)
}

type DebugDumpCmd struct {
	Prefix string `arg:"" optional:"" help:"Only keys starting with this prefix (e.g. 'steps.')."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys(cmd.Prefix)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	dump := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		v, ok, err := ctx.Store.Get(k)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		// Collections are shown as JSON rather than escaped strings
		if json.Valid([]byte(v)) && len(v) > 0 && (v[0] == '{' || v[0] == '[') {
			dump[k] = json.RawMessage(v)
		} else {
			dump[k] = v
		}
	}
	return printJSON(ctx, dump)
}

func printJSON(ctx *Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
