package main

import "github.com/totallynotdavid/music-stats/cmd"

func main() {
	cmd.Execute()
}
