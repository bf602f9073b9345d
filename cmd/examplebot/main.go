package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/revrost/go-openrouter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"revoltkit/cache"
	"revoltkit/client"
	"revoltkit/framework"
	"revoltkit/framework/params"
	"revoltkit/gateway"
	"revoltkit/rest"
)

func main() {
	log.Info().Msg("starting examplebot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	api := rest.NewClient(viper.GetString("revolt.api_url"), viper.GetString("revolt.token"))

	fc := &framework.Context{
		API:   api,
		Cache: cache.New(cache.Options{MaxMessages: viper.GetInt("bot.max_cached_messages")}),
		Data:  newUsageTracker(ctx),
	}

	askClient := openrouter.NewClient(
		viper.GetString("openrouter.api_key"),
		openrouter.WithXTitle("examplebot"),
	)
	askModel := viper.GetString("openrouter.model")

	root := framework.Root(
		framework.NewGroup("General").
			AddCommand(framework.NewCommand("ping",
				framework.Args0(pingHandler)).
				WithDescription("check that the bot is alive")).
			AddCommand(framework.NewCommand("echo",
				framework.Args1(echoHandler)).
				WithAliases("say").
				WithUsage("echo <text...>")).
			AddCommand(framework.NewCommand("whoami",
				framework.Args1(whoamiHandler))).
			AddCommand(framework.NewCommand("ask",
				framework.Args1(askHandler(askClient, askModel))).
				WithUsage("ask <question...>")),
	)

	fw := framework.New().
		WithPrefix(viper.GetString("bot.prefix")).
		WithRoot(root).
		After(afterHandler)

	c := client.New(fc, client.Handlers{}).WithFramework(fw)

	gw := gateway.New(viper.GetString("revolt.ws_url"), viper.GetString("revolt.token"))
	if err := gw.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed connecting to gateway")
	}

	log.Info().Msg("bot listening")
	if err := gw.Run(ctx, c); err != nil {
		log.Err(err).Msg("gateway stopped")
	}

	c.Close()
}

func pingHandler(ctx context.Context, fc *framework.Context, m *framework.Msg) error {
	_, err := fc.SendText(ctx, m.Message.Channel, "pong")
	return err
}

func echoHandler(ctx context.Context, fc *framework.Context, m *framework.Msg,
	text params.Rest[params.Text]) error {
	_, err := fc.SendText(ctx, m.Message.Channel, string(text.Value))
	return err
}

func whoamiHandler(ctx context.Context, fc *framework.Context, m *framework.Msg,
	author params.Author) error {
	_, err := fc.SendText(ctx, m.Message.Channel,
		fmt.Sprintf("you are %s (%s)", author.Username, author.ID))
	return err
}

func askHandler(orClient *openrouter.Client,
	model string) func(context.Context, *framework.Context, *framework.Msg, params.RawArgs) error {
	return func(ctx context.Context, fc *framework.Context, m *framework.Msg,
		question params.RawArgs) error {
		tracker := fc.Data.(*usageTracker)
		if !tracker.allow(m.Message.Author) {
			_, err := fc.SendText(ctx, m.Message.Channel,
				"you have used up your questions for today, try again tomorrow")
			return err
		}

		resp, err := orClient.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
			Model: model,
			Messages: []openrouter.ChatCompletionMessage{
				{
					Role:    openrouter.ChatMessageRoleUser,
					Content: openrouter.Content{Text: string(question)},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("openrouter API error: %w", err)
		}

		_, err = fc.SendText(ctx, m.Message.Channel, resp.Choices[0].Message.Content.Text)
		return err
	}
}

func afterHandler(ctx context.Context, fc *framework.Context, m *framework.Msg,
	cmd *framework.Command, err error) {
	if err == nil {
		return
	}

	log.Err(err).Str("command", cmd.Name).Msg("command failed")

	reply := fmt.Sprintf("%s failed: %s", cmd.Name, err)
	if cmd.Usage != "" {
		reply += "\nusage: " + cmd.Usage
	}
	if _, sendErr := fc.SendText(ctx, m.Message.Channel, reply); sendErr != nil {
		log.Err(sendErr).Msg("failed to report command error")
	}
}
