// Package logger provides the process-wide Zap logger with context-based scoping.
//
// Init se llama una vez en main; los middlewares HTTP inyectan un logger por request
// (request_id, method, path) que handlers y services recuperan con From(ctx):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Info("email sent", logger.SMTPHost(host), logger.MessageID(id))
//
// Las credenciales SMTP nunca se loguean; las direcciones pasan por util.MaskAddress.
package logger
