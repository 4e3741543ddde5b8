package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/tsqgo/internal/meta"
	"github.com/urfave/cli/v3"
)

const bashCompletionScript = `# bash completion for tsq
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tsq()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "q cl cc cd completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
  local common="--attrs -a --cache-dir --color -c --filter -f --output -o --sort -s --titles -t --tldr"

    case "$cmd" in
    q)
      local opts="$common --refresh -r --source --seed --bucket --object --time-column --region --profile"
            ;;
        cl)
      local opts="$common"
            ;;
        cc)
      local opts="$common --pattern -p --older-than --all"
            ;;
        cd)
      local opts="$common"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--source" ]]; then
        COMPREPLY=( $(compgen -W "synthetic s3" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--cache-dir" ]]; then
        COMPREPLY=( $(compgen -o dirnames -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _tsq tsq
`

const zshCompletionScript = `#compdef tsq

_tsq() {
  local -a cmds
  cmds=(
    'q:range query'
    'cl:cache list'
    'cc:cache clear'
    'cd:cache diff'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '--cache-dir[cache directory]:directory:_directories'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tsq commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    q)
      _arguments -C \
        $common \
        '(-r --refresh)'{-r,--refresh}'[bypass the cache]' \
        '--source[source to query]:source:(synthetic s3)' \
        '--seed[synthetic source seed]:seed' \
        '--bucket[s3 bucket]:bucket' \
        '--object[s3 object key]:object' \
        '--time-column[time column name]:column' \
        '--region[AWS region]:region' \
        '--profile[AWS profile]:profile' \
        '1:start' \
        '2:end'
      ;;
    cl)
      _arguments -C $common
      ;;
    cc)
      _arguments -C \
        $common \
        '(-p --pattern)'{-p,--pattern}'[name substring to clear]:pattern' \
        '--older-than[age threshold in hours]:hours' \
        '--all[clear everything]'
      ;;
    cd)
      _arguments -C \
        $common \
        '1:artifact:_files -g "*.xlsx"' \
        '2:artifact:_files -g "*.xlsx"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tsq tsq tsqgo
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(os.Stdout, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(os.Stdout, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: tsq completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tsq completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
