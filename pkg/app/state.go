package app

import (
	"encoding/json"
	"fmt"
	"time"

	"snesio/pkg/mqtt"
	"snesio/pkg/snes"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// stateMessage is the payload published to mqtt and served on /state.
type stateMessage struct {
	Time    time.Time    `json:"time"`
	State   string       `json:"state"`
	Buttons snes.Buttons `json:"buttons"`
}

func newStateMessage(state uint16) stateMessage {
	return stateMessage{
		Time:    time.Now(),
		State:   fmt.Sprintf("%#04x", state),
		Buttons: snes.DecodeButtons(snes.Frame(state)),
	}
}

// monitor watches the stable input state and republishes it to the
// mqtt broker on every change, and at least once per configured mqtt
// interval as a keep-alive. It polls; the engine has no push API.
func (app *App) monitor() {
	last := app.engine.InputState()
	lastSent := time.Time{}

	for range time.Tick(app.config.Interval) {
		select {
		case <-app.shutdown:
			return
		default:
		}

		state := app.engine.InputState()
		if state == last && time.Since(lastSent) < app.config.MQTT.Interval {
			continue
		}

		debug.DebugLog.Printf("input state %#04x", state)
		app.sendMQTT(app.config.MQTT.Topic, newStateMessage(state))

		last = state
		lastSent = time.Now()
	}
}

// sendMQTT sends the message struct to the mqtt broker.
func (app *App) sendMQTT(topic string, message interface{}) {
	go func(t string, r interface{}) {
		debug.TraceLog.Printf("prepare mqtt message %v %v", t, r)

		b, err := json.Marshal(r)
		if err != nil {
			debug.ErrorLog.Printf("sendMQTT marshal: %v", err)
			return
		}

		app.mqtt.C <- mqtt.Message{
			Qos:      0,
			Retained: true,
			Topic:    t,
			Payload:  b,
		}
	}(topic, message)
}

// HandleState is the get input state web handler.
func (app *App) HandleState() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		debug.InfoLog.Print("web request state")

		return ctx.JSON(newStateMessage(app.engine.InputState()))
	}
}
