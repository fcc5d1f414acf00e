package game

import "fmt"

func yourTurnMessage(name string) string {
	return fmt.Sprintf("Your turn, %s! Open the menu to pick an action.", name)
}

func gameBegunMessage(name string, players int) string {
	return fmt.Sprintf("The game has begun with %d players. %s goes first.", players, name)
}

func robbedMessage(thief string, success bool, points int) string {
	if success {
		return fmt.Sprintf("%s robbed you of %d points!", thief, points)
	}
	return fmt.Sprintf("%s tried to rob you and failed. You gained %d points.", thief, points)
}

func inactivityMessage(name string) string {
	return fmt.Sprintf("%s, you have not played for a while. Come back to the tavern!", name)
}
