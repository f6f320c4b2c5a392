package socket_io

import (
	quiz_constants "Spotiquiz/constants/quiz"
	redis_models "Spotiquiz/models/redis"
	"Spotiquiz/services/quiz"
	"Spotiquiz/services/socket_io/handlers"
	socketio_types "Spotiquiz/services/socket_io/types"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// ServerOptions returns the engine.io/socket.io settings the quiz runs with.
func ServerOptions() *socket.ServerOptions {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	return c
}

// Start mounts socket.io on router and wires every quiz event to store.
// presence may be nil.
func (sio *MySocketServer) Start(router *gin.Engine, store *quiz.RoomStore, presence handlers.Presence, debug bool) {
	log.DEBUG = debug
	c := ServerOptions()

	server := (*socketio_types.SocketServer)(sio)
	if sio.Connections == nil {
		// KEY: inicializar el map, sino panikea
		sio.Connections = make(map[string]socketio_types.Connection)
	}

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		id := string(client.Id())

		server.AddConnection(client)
		handlers.MarkPresence(presence, id, redis_models.StatusOnline, "")
		fmt.Println("A player just connected: ", id, " current connections: ", server.Count())

		client.On(quiz_constants.EventCreateRoom, handlers.HandleCreateRoom(store, client, presence))

		client.On(quiz_constants.EventJoinRoom, handlers.HandleJoinRoom(store, client, presence))

		client.On(quiz_constants.EventSetPlayerName, handlers.HandleSetPlayerName(store, client))

		client.On(quiz_constants.EventSetPlayerDbID, handlers.HandleSetPlayerDbID(store, client))

		// Only the host's question set starts the game
		client.On(quiz_constants.EventHostQuestions, handlers.HandleHostQuestions(store, client))

		client.On(quiz_constants.EventSubmitAnswer, handlers.HandleSubmitAnswer(store, client))

		// NOTE: leaves every room and removes the connection from the map
		client.On("disconnect", handlers.HandleDisconnect(store, client, server, presence))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	fmt.Println("Socket server started")
}

// Close disconnects every client.
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
