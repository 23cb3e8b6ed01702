package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/meowkat/go-discord-relay/ircnick"
	"github.com/meowkat/go-discord-relay/relay"
)

func main() {
	config := flag.String("config", "", "Config file to read configuration stuff from")
	debugMode := flag.Bool("debug", false, "Debug mode? (false = use value from settings)")
	notls := flag.Bool("no-tls", false, "Avoids using TLS at all when connecting to the IRC server")
	insecure := flag.Bool("insecure", false, "Skip TLS certificate verification? (INSECURE MODE) (false = use value from settings)")

	flag.Parse()

	if *config == "" {
		log.Fatalln("--config argument is required!")
		return
	}

	viper := viper.New()
	ext := filepath.Ext(*config)
	configName := strings.TrimSuffix(filepath.Base(*config), ext)
	configType := ext[1:]
	configPath := filepath.Dir(*config)
	viper.SetConfigName(configName)
	viper.SetConfigType(configType)
	viper.AddConfigPath(configPath)

	log.WithFields(log.Fields{
		"ConfigName": configName,
		"ConfigType": configType,
		"ConfigPath": configPath,
	}).Infoln("Loading configuration...")

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not read config"))
	}

	discordBotToken := viper.GetString("discord_token") // Discord Bot User Token
	guildID := viper.GetString("guild_id")              // Guild to relay for
	ircServer := viper.GetString("irc_server")          // Server address to use, example `irc.libera.chat:6697`.
	ircPassword := viper.GetString("irc_pass")          // Optional password for connecting to the IRC server
	//
	viper.SetDefault("irc_nick", "meow")
	ircNick := ircnick.Sanitize(viper.GetString("irc_nick")) // Nickname for the IRC-side bot
	//
	viper.SetDefault("irc_user", "relay")
	ircUser := viper.GetString("irc_user")
	//
	linkEntries := viper.GetStringSlice("links")         // Ordered "#ircchannel:discordid" pairs
	webhooks := viper.GetStringMapString("webhooks")     // Discord channel id to webhook URL, for impersonated sends
	pasteEndpoint := viper.GetString("paste_endpoint")   // Paste service API; empty for public paste.gg
	pasteKey := viper.GetString("paste_key")             // Optional paste service API key
	//
	if !*debugMode {
		*debugMode = viper.GetBool("debug")
	}
	if !*notls {
		*notls = viper.GetBool("no_tls")
	}
	if !*insecure {
		*insecure = viper.GetBool("insecure")
	}

	links, err := relay.ParseLinks(linkEntries)
	if err != nil {
		log.Fatalln(errors.Wrap(err, "could not parse room links"))
	}
	if len(links) == 0 {
		log.Warnln("Room links are missing!")
	}

	SetLogDebug(*debugMode)

	r, err := relay.New(&relay.Config{
		DiscordBotToken:         discordBotToken,
		GuildID:                 guildID,
		IRCServer:               ircServer,
		IRCServerPass:           ircPassword,
		IRCNick:                 ircNick,
		IRCUser:                 ircUser,
		Links:                   links,
		Webhooks:                webhooks,
		PasteEndpoint:           pasteEndpoint,
		PasteKey:                pasteKey,
		NoTLS:                   *notls,
		InsecureSkipVerify:      *insecure,
		IRCIgnores:              compileGlobs(viper.GetStringSlice("irc_ignores")),
		IRCFilteredMessages:     compileGlobs(viper.GetStringSlice("irc_filtered_messages")),
		DiscordFilteredMessages: compileGlobs(viper.GetStringSlice("discord_filtered_messages")),
		Debug:                   *debugMode,
	})
	if err != nil {
		log.WithField("error", err).Fatalln("Go-Discord-Relay failed to initialise.")
		return
	}

	// Create new signal receiver
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	// Open the relay
	err = r.Open()
	if err != nil {
		log.WithField("error", err).Fatalln("Go-Discord-Relay failed to start.")
		return
	}

	// Inform the user that things are happening!
	log.Infoln("Go-Discord-Relay is now running. Press Ctrl-C to exit.")

	// Start watching for live changes...
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Configuration file has changed!")

		if debug := viper.GetBool("debug"); *debugMode != debug {
			log.Printf("Debug changed from %+v to %+v", *debugMode, debug)
			*debugMode = debug
			SetLogDebug(debug)
		}

		// The link table and webhook pool are immutable while running.
		if newLinks, err := relay.ParseLinks(viper.GetStringSlice("links")); err == nil {
			if !reflect.DeepEqual(newLinks, links) {
				log.Warnln("Room links changed on disk; restart the relay to apply them.")
			}
		}
	})

	// Watch for a shutdown signal
	<-sc

	log.Infoln("Shutting down Go-Discord-Relay...")

	// Cleanly close down the relay.
	r.Close()
}

func compileGlobs(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			log.WithField("pattern", pattern).Fatalln(errors.Wrap(err, "could not compile filter glob"))
		}
		globs = append(globs, g)
	}
	return globs
}

func SetLogDebug(debug bool) {
	logger := log.StandardLogger()
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}
