package arena

const (
	SimHz        = 20.0 // server tick rate
	Dt           = 1.0 / SimHz
	UpdateRateHz = 10.0 // per-client WS state pushes

	WorldW = 2000.0
	WorldH = 2000.0

	DefaultCaptureRadius = 900.0
	DefaultLostOffset    = 150.0
	PatrolSpeed          = 60.0 // units/s
	PatrolStopEps        = 5.0
)
