package agent

import (
	"github.com/nstehr/goose/ipc"
	"github.com/nstehr/goose/rules"
)

// Serve runs one session on tr until the peer goes away.
func Serve(tr ipc.Transport, engine *rules.Engine) {
	c := ipc.NewConnection(tr, nil)
	a := New(engine, c.Logger())
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeAct, a.HandleAct)
	c.RegisterHandler(ipc.TypePlan, a.HandlePlan)
	c.ReadLoop()
}
