package config

// Target names the relay host both the push channel and the submission
// endpoint talk to. The active target is fixed at build time.
type Target struct {
	Name    string
	PushURL string
	SendURL string
}

const productionHost = "go-backend-dqcl.onrender.com"

// ProductionTarget is the hosted relay.
func ProductionTarget() Target {
	return Target{
		Name:    "production",
		PushURL: "wss://" + productionHost + "/ws",
		SendURL: "https://" + productionHost + "/api/send",
	}
}

// LocalTarget is a relay running on the developer machine.
func LocalTarget() Target {
	return Target{
		Name:    "local",
		PushURL: "ws://localhost:8080/ws",
		SendURL: "http://localhost:8080/api/send",
	}
}
