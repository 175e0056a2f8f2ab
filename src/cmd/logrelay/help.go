// FILE: logrelay/src/cmd/logrelay/help.go
package main

const helpText = `logrelay: Forward a container's live log lines to a chat.

Usage:
  logrelay [command] [options]
  logrelay [options] [--section.key=value ...]

Commands:
  config                   Write a default configuration file
  version                  Display version information

Application Control:
  -c, --config <path>      Path to configuration file (default: ~/.config/logrelay.toml)
  -h, --help               Display this help message and exit
  -v, --version            Display version information and exit
  -q, --quiet              Suppress all console output, including errors

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - Any config key can be set on the command line: --source.container=web
  - Environment variables use the LOGRELAY_ prefix: LOGRELAY_SINK_TELEGRAM_TOKEN
  - BOT_TOKEN, CHAT_ID, CONTAINER_NAME, LOGGER_NAME and LOG_PATTERN are
    honoured when the prefixed variable is not set

Examples:
  # Follow container "bot", forward lines tagged "worker"
  BOT_TOKEN=123:abc CHAT_ID=-100200 logrelay --source.container=bot --filter.tag=worker

  # Dry run: print what would be sent
  logrelay --source.container=bot --sink.type=console

  # Pipe any log through the filter
  tail -f app.log | logrelay --source.type=stdin --filter.pattern='ERROR|WARN'

  # Generate a config template
  logrelay config -o /etc/logrelay/logrelay.toml
`
