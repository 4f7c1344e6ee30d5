// Package cli is the eventsctl command set: the page layer of the events
// client. Commands parse flags, prompt for missing input and print results;
// all state and network work goes through the session and event usecases.
package cli
