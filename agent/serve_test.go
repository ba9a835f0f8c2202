package agent

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/nstehr/goose/ipc"
	"github.com/nstehr/goose/model"
	"github.com/nstehr/goose/rules"
)

func TestServeSession(t *testing.T) {
	engine, err := rules.NewEngine(rules.DefaultProfile())
	if err != nil {
		t.Fatal(err)
	}
	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		Serve(ipc.NewStreamTransport(server), engine)
	}()

	roundTrip := func(msgType string, data any) ipc.Envelope {
		t.Helper()
		if err := ipc.WriteEnvelope(client, envelope(t, msgType, data)); err != nil {
			t.Fatalf("write %s: %v", msgType, err)
		}
		reply, err := ipc.ReadEnvelope(client)
		if err != nil {
			t.Fatalf("read reply to %s: %v", msgType, err)
		}
		return reply
	}

	if reply := roundTrip(ipc.TypeHello, ipc.HelloMessage{PlayerID: 0}); reply.Type != ipc.TypeAck {
		t.Fatalf("hello reply = %q, want ack", reply.Type)
	}

	self := model.Loc(9, 9)
	reply := roundTrip(ipc.TypeAct, ipc.ActMessage{Turn: 1, Robots: []model.Unit{unit(9, 9, 50, 0)}, Self: &self})
	if reply.Type != ipc.TypeAction {
		t.Fatalf("act reply = %q, want action", reply.Type)
	}
	var action ipc.ActionMessage
	if err := json.Unmarshal(reply.Data, &action); err != nil {
		t.Fatal(err)
	}
	if action.Location != self || action.Action != model.GuardAction() {
		t.Errorf("action = %+v, want guard at %v", action, self)
	}

	missing := model.Loc(1, 9)
	reply = roundTrip(ipc.TypeAct, ipc.ActMessage{Turn: 2, Robots: []model.Unit{unit(9, 9, 50, 0)}, Self: &missing})
	if reply.Type != ipc.TypeError {
		t.Errorf("reply for unplanned unit = %q, want error", reply.Type)
	}

	client.Close()
	<-done
}
