package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"copytext/internal/i18n"
	"copytext/pkg/spuri"
)

// Invocation statuses reported to the Recorder.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusEmpty    = "empty"
	StatusCanceled = "canceled"
)

// MenuEntry is a localized, applicable command ready to be rendered.
type MenuEntry struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	Group      string `json:"group,omitempty"`
	GroupLabel string `json:"group_label,omitempty"`
}

// Result reports what one invocation did. Err is informational only; the
// user has already been notified of it.
type Result struct {
	InvocationID string
	Command      string
	Status       string
	Text         string
	Notice       string
	Err          error
}

// Dispatcher resolves selections and runs commands against the collaborators.
type Dispatcher struct {
	config         *Config
	resolver       *Resolver
	lookup         MetadataLookup
	clipboard      Clipboard
	notifier       Notifier
	exporter       Exporter
	transliterator Transliterator
	recorder       Recorder
	logger         *zap.Logger
	localizer      *i18n.Localizer
}

// NewDispatcher creates a dispatcher. folders, exporter and transliterator may be nil;
// the commands depending on them then fail with an error notification.
func NewDispatcher(
	config *Config,
	lookup MetadataLookup,
	folders FolderLister,
	clipboard Clipboard,
	notifier Notifier,
	exporter Exporter,
	transliterator Transliterator,
	recorder Recorder,
	logger *zap.Logger,
) *Dispatcher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Dispatcher{
		config:         config,
		resolver:       NewResolver(lookup, folders, recorder, logger.Named("resolver")),
		lookup:         lookup,
		clipboard:      clipboard,
		notifier:       notifier,
		exporter:       exporter,
		transliterator: transliterator,
		recorder:       recorder,
		logger:         logger,
		localizer:      i18n.NewLocalizer(config.App.Language),
	}
}

// Localizer returns the localizer used for labels and notifications.
func (d *Dispatcher) Localizer() *i18n.Localizer {
	return d.localizer
}

// Resolver exposes the resolver for callers that only need display text.
func (d *Dispatcher) Resolver() *Resolver {
	return d.resolver
}

// Menu lists the commands applicable to the selection with localized labels.
func (d *Dispatcher) Menu(selection []string) []MenuEntry {
	var entries []MenuEntry
	for _, cmd := range commandTable {
		if !IsApplicable(cmd, selection) {
			continue
		}
		entry := MenuEntry{
			ID:    cmd.ID,
			Label: d.localizer.T(cmd.LabelKey),
			Icon:  cmd.Icon,
			Group: cmd.Group,
		}
		if cmd.Group != "" {
			entry.GroupLabel = d.localizer.T(GroupLabelKey)
		}
		entries = append(entries, entry)
	}
	return entries
}

// Invoke runs one command on the selection. Non-applicable selections are a
// silent no-op. Every failure is caught here, shown to the user as an error
// notification and never propagated as a panic or to other invocations.
func (d *Dispatcher) Invoke(ctx context.Context, commandID string, selection []string) Result {
	result := Result{
		InvocationID: uuid.NewString(),
		Command:      commandID,
	}
	logger := d.logger.With(
		zap.String("invocation_id", result.InvocationID),
		zap.String("command", commandID),
	)

	cmd, ok := LookupCommand(commandID)
	if !ok {
		logger.Warn("Unknown command")
		result.Status = StatusError
		result.Err = fmt.Errorf("%w: %s", ErrUnknownCommand, commandID)
		return result
	}

	if !IsApplicable(cmd, selection) {
		logger.Debug("Command not applicable to selection", zap.Strings("selection", selection))
		result.Status = StatusSkipped
		d.recorder.RecordInvocation(commandID, result.Status)
		return result
	}

	ref := spuri.Classify(selection[0])
	logger = logger.With(zap.String("kind", ref.Kind.String()), zap.String("uri", ref.Raw))

	out, err := cmd.run(ctx, d, ref)
	if err == nil && out.copy != "" {
		err = d.clipboard.Copy(ctx, out.copy)
	}

	switch {
	case errors.Is(err, ErrExportCanceled):
		logger.Info("Export canceled by user")
		result.Status = StatusCanceled
	case err != nil:
		logger.Warn("Command failed", zap.Error(err))
		result.Status = StatusError
		result.Err = err
		result.Notice = d.localizer.T("notify.error") + ": " + err.Error()
		d.notifier.Show(result.Notice)
	case out.notice == "":
		logger.Debug("Command produced no result")
		result.Status = StatusEmpty
	default:
		logger.Info("Command completed", zap.String("text", out.copy))
		result.Status = StatusOK
		result.Text = out.copy
		result.Notice = out.notice
		d.notifier.Show(out.notice)
	}

	d.recorder.RecordInvocation(commandID, result.Status)
	return result
}

// copied builds the outcome for text that goes to the clipboard.
func (d *Dispatcher) copied(text string) outcome {
	if text == "" {
		return outcome{}
	}
	return outcome{copy: text, notice: d.localizer.T("notify.copied", text)}
}
