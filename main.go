package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KhadeerBasha1232/letter-backend/archive"
	"github.com/KhadeerBasha1232/letter-backend/core"
	"github.com/KhadeerBasha1232/letter-backend/handlers/api/letters"
	"github.com/KhadeerBasha1232/letter-backend/handlers/auth"
	authMiddleware "github.com/KhadeerBasha1232/letter-backend/middleware"
	"github.com/KhadeerBasha1232/letter-backend/realtime"
	"github.com/KhadeerBasha1232/letter-backend/stores"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

func setupRouter(store core.LetterStore, manager *archive.Manager, seq *realtime.Sequencer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Origin", "Host", "Connection", "Accept-Encoding", "Accept-Language", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Route("/api/letters", func(r chi.Router) {
		// Public fetch so invited viewers can load a letter before joining
		// its room.
		r.Get("/live/{letterID}", letters.HandleGetLive(store))

		// Everything else requires the owner's JWT.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.AuthJWT)
			r.Post("/create", letters.HandleCreate(store))
			r.Get("/", letters.HandleList(store))
			r.Get("/letter/{letterID}", letters.HandleGet(store))
			r.Put("/edit/{letterID}", letters.HandleEdit(store, seq))
			r.Delete("/delete/{letterID}", letters.HandleDelete(store, manager))
			r.Post("/archive/{letterID}", letters.HandleArchive(store, manager))
			r.Delete("/archive/{letterID}", letters.HandleUnarchive(store, manager))
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", auth.HandleLogin)
		r.Get("/callback", auth.HandleCallback)
	})

	return r
}

// socketEmitter adapts a socket.io socket to the realtime.Emitter seam.
type socketEmitter struct {
	socket *socketio.Socket
}

func (e socketEmitter) Emit(event string, payload any) {
	if err := e.socket.Emit(event, payload); err != nil {
		logrus.WithField("event", event).WithError(err).Debug("emit failed")
	}
}

func setupSocketIO(coordinator *realtime.Coordinator) *socketio.Server {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(5000000)
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	ioo := socketio.NewServer(nil, opts)

	ioo.On("connection", func(clients ...any) {
		socket := clients[0].(*socketio.Socket)
		sess := realtime.NewSession(string(socket.Id()), socketEmitter{socket})
		logrus.WithField("session_id", sess.ID()).Info("User connected")

		socket.On("joinLetter", func(datas ...any) {
			letterID, ok := datas[0].(string)
			if !ok || letterID == "" {
				sess.Send(realtime.EventLetterError, "letter id is required")
				return
			}
			coordinator.OnJoin(context.Background(), sess, letterID)
		})

		socket.On("requestLatestContent", func(datas ...any) {
			letterID, ok := datas[0].(string)
			if !ok || letterID == "" {
				sess.Send(realtime.EventLetterError, "letter id is required")
				return
			}
			coordinator.OnRequestLatest(context.Background(), sess, letterID)
		})

		socket.On("updateLetter", func(datas ...any) {
			payload, ok := datas[0].(map[string]any)
			if !ok {
				sess.Send(realtime.EventLetterError, "invalid update payload")
				return
			}
			letterID, _ := payload["letterId"].(string)
			content, _ := payload["content"].(string)
			if letterID == "" {
				sess.Send(realtime.EventLetterError, "letter id is required")
				return
			}
			coordinator.OnUpdate(context.Background(), sess, letterID, content)
		})

		socket.On("leaveLetter", func(datas ...any) {
			letterID, ok := datas[0].(string)
			if !ok || letterID == "" {
				return
			}
			coordinator.OnLeave(sess, letterID)
		})

		socket.On("disconnect", func(datas ...any) {
			logrus.WithField("session_id", sess.ID()).Info("User disconnected")
			coordinator.OnDisconnect(sess)
		})
	})
	return ioo
}

func waitForShutdown(ioo *socketio.Server) {
	exit := make(chan struct{})
	signalC := make(chan os.Signal, 1)

	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range signalC {
			switch s {
			case os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	ioo.Close(nil)
	logrus.Info("Shutting down...")
	os.Exit(0)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":5000", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	auth.InitAuth()
	store := stores.GetStore()
	uploader := archive.GetUploader()

	seq := realtime.NewSequencer()
	registry := realtime.NewRegistry()
	coordinator := realtime.NewCoordinator(store, registry, seq)
	manager := archive.NewManager(store, uploader, seq)

	r := setupRouter(store, manager, seq)

	ioo := setupSocketIO(coordinator)
	r.Mount("/socket.io/", ioo.ServeHandler(nil))

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := http.ListenAndServe(*listenAddress, r); err != nil {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(ioo)
}
