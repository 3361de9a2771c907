package process

import (
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/register"
	"github.com/neodocs/neodocs/pkg/safe"
)

type Process struct {
	cron *cron.Cron
	core *core.Core
}

var p *Process

type ProcessKey struct{}

func NewProcess(core *core.Core) *Process {
	p = &Process{
		cron: cron.New(),
		core: core,
	}

	for _, h := range register.ResolveFuncHandlers[*Process](ProcessKey{}) {
		h(p)
	}

	return p
}

func (p *Process) Core() *core.Core {
	return p.core
}

func (p *Process) Cron() *cron.Cron {
	return p.cron
}

func (p *Process) Start() {
	p.cron.Start()
	slog.Info("Background process started")
}

func (p *Process) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
}

func (p *Process) AddFunc(spec string, fn func()) {
	if _, err := p.cron.AddFunc(spec, func() {
		safe.Run(fn)
	}); err != nil {
		slog.Error("Failed to register cron func", slog.String("error", err.Error()), slog.String("spec", spec))
	}
}
