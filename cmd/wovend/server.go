package main

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/httpwire"
	"github.com/wovenwire/wovenwire/pkg/message"
	"github.com/wovenwire/wovenwire/pkg/transport"
	"github.com/wovenwire/wovenwire/pkg/websocket"
	"github.com/wovenwire/wovenwire/pkg/wsecho"
)

// echoTarget is the only path this demo server upgrades to WebSocket.
const echoTarget = "/echo"

type server struct {
	port           int
	maxHeaderBytes int
	idleTimeout    time.Duration
	deflateEnabled bool
}

func newServer(cmd *cli.Command) *server {
	return &server{
		port:           cmd.Int("port"),
		maxHeaderBytes: cmd.Int("max-header-bytes"),
		idleTimeout:    time.Duration(cmd.Int("idle-timeout-seconds")) * time.Second,
		deflateEnabled: cmd.Bool("deflate"),
	}
}

// Run listens on the configured port and serves connections until ctx is
// canceled.
func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(s.port)))
	if err != nil {
		return err
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	log.Info().Msgf("wovend listening on port %d", s.port)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	l := log.With().Str("remote_addr", conn.RemoteAddr().String()).Logger()

	if s.idleTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
	}

	reader := httpwire.NewReader(conn, httpwire.WithMaxHeaderBytes(s.maxHeaderBytes))
	req, err := reader.ReadRequest()
	if err != nil {
		l.Warn().Err(err).Msg("failed to read request")
		return
	}
	l = l.With().Str("method", req.Method).Str("target", req.Target).Logger()
	l.Info().Msg("received HTTP request")

	if nonce, err := websocket.ValidateUpgradeRequest(req); err == nil && req.Target == echoTarget {
		s.handleUpgrade(ctx, conn, req, nonce, l)
		return
	}

	s.handleHTTP(conn, req, l)
}

func (s *server) handleUpgrade(ctx context.Context, conn net.Conn, req message.Request, nonce string, l zerolog.Logger) {
	var agreed *header.Extension
	if s.deflateEnabled {
		if v, ok := req.Headers.Get("Sec-WebSocket-Extensions"); ok {
			if ext, ok2 := websocket.NegotiateDeflate(header.ParseExtensions(v)); ok2 {
				agreed = &ext
			}
		}
	}

	resp := websocket.BuildUpgradeResponse(nonce, agreed)
	if err := httpwire.NewWriter(conn).WriteResponse(resp, req.Method); err != nil {
		l.Warn().Err(err).Msg("failed to write handshake response")
		return
	}

	ch := transport.NewConnChannel(conn)
	_ = ch.SetReadTimeout(0) // handshake-only deadline lifts once the session is open.

	handler := wsecho.New(wsecho.WithLogger(slog.Default()))
	sess := websocket.NewSession(ch, websocket.RoleServer, handler, websocket.WithDeflate(agreed != nil))
	l.Info().Str("session_id", sess.ID()).Bool("deflate", agreed != nil).Msg("upgraded to WebSocket")

	if err := sess.Run(ctx); err != nil {
		l.Warn().Err(err).Str("session_id", sess.ID()).Msg("WebSocket session ended")
	}
}

func (s *server) handleHTTP(conn net.Conn, req message.Request, l zerolog.Logger) {
	var resp message.Response
	switch req.Target {
	case "/", echoTarget:
		resp = message.NewResponse(200, "OK", message.HTTP11)
		resp = resp.WithHeader("Content-Type", "text/plain; charset=utf-8")
		resp = resp.WithBody(message.NewBytesEntity([]byte("wovend: send a WebSocket upgrade request to " + echoTarget + "\n")))
	default:
		resp = message.NewResponse(404, "Not Found", message.HTTP11)
		resp = resp.WithBody(message.NewBytesEntity([]byte("not found\n")))
	}

	if err := httpwire.NewWriter(conn).WriteResponse(resp, req.Method); err != nil {
		l.Warn().Err(err).Msg("failed to write response")
	}
}
